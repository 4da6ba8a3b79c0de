package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/notehaven/notehaven/pkg/pathutil"
)

// Storage is a top-level note collection owning folders, notes and tags.
type Storage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rev       int64     `json:"rev"` // bumped on every mutation of the storage's contents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// FolderMap maps folder path to metadata. The root "/" is always
	// present. TagMap maps tag name to metadata.
	FolderMap map[string]*Folder `json:"folder_map"`
	TagMap    map[string]*Tag    `json:"tag_map"`
}

// Folder is the metadata of one virtual folder inside a storage.
type Folder struct {
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tag is the metadata of one tag inside a storage.
type Tag struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// FolderPaths returns every folder path of the storage in sorted order,
// including the root. Sorting keeps the navigation tree deterministic
// regardless of map iteration.
func (s *Storage) FolderPaths() []string {
	paths := make([]string, 0, len(s.FolderMap))
	for path := range s.FolderMap {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// TagNames returns every tag name of the storage in sorted order.
func (s *Storage) TagNames() []string {
	names := make([]string, 0, len(s.TagMap))
	for name := range s.TagMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the storage is well-formed.
func (s *Storage) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("storage id cannot be empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("storage name cannot be empty")
	}
	for path := range s.FolderMap {
		normalized, err := pathutil.Normalize(path)
		if err != nil {
			return fmt.Errorf("folder %q: %w", path, err)
		}
		if normalized != path {
			return fmt.Errorf("folder %q is not normalized", path)
		}
	}
	return nil
}

// ValidateTagName rejects tag names that cannot appear in a tag href.
func ValidateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name cannot be empty")
	}
	if strings.ContainsAny(name, "/ \t\n") {
		return fmt.Errorf("tag name %q contains slash or whitespace", name)
	}
	return nil
}
