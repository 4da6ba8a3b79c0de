// Package route defines the href scheme used by the navigation tree and
// resolves hrefs back into typed routes.
//
//	/storages/{storageID}
//	/storages/{storageID}/notes{folderPath}
//	/storages/{storageID}/tags/{tag}
//	/storages/{storageID}/trashcan
package route

import (
	"fmt"
	"strings"

	"github.com/notehaven/notehaven/pkg/pathutil"
)

const storagesPrefix = "/storages/"

// Route is a parsed href.
type Route interface {
	// Href renders the route back into its canonical href.
	Href() string
}

// Storage points at a storage's landing view.
type Storage struct {
	StorageID string
}

func (r Storage) Href() string {
	return storagesPrefix + r.StorageID
}

// Notes points at the note list of one folder. FolderPath "/" is the
// storage's Notes root.
type Notes struct {
	StorageID  string
	FolderPath string
}

func (r Notes) Href() string {
	if pathutil.IsRoot(r.FolderPath) || r.FolderPath == "" {
		return storagesPrefix + r.StorageID + "/notes"
	}
	return storagesPrefix + r.StorageID + "/notes" + r.FolderPath
}

// Tag points at the note list of one tag.
type Tag struct {
	StorageID string
	Tag       string
}

func (r Tag) Href() string {
	return storagesPrefix + r.StorageID + "/tags/" + r.Tag
}

// Trash points at a storage's trash can.
type Trash struct {
	StorageID string
}

func (r Trash) Href() string {
	return storagesPrefix + r.StorageID + "/trashcan"
}

// Parse resolves an href produced by this package into its typed route.
func Parse(href string) (Route, error) {
	rest, ok := strings.CutPrefix(href, storagesPrefix)
	if !ok || rest == "" {
		return nil, fmt.Errorf("unroutable href %q", href)
	}

	storageID, tail, _ := strings.Cut(rest, "/")
	if storageID == "" {
		return nil, fmt.Errorf("unroutable href %q: missing storage id", href)
	}

	switch {
	case tail == "":
		return Storage{StorageID: storageID}, nil
	case tail == "notes":
		return Notes{StorageID: storageID, FolderPath: pathutil.Root}, nil
	case strings.HasPrefix(tail, "notes/"):
		folderPath, err := pathutil.Normalize(strings.TrimPrefix(tail, "notes"))
		if err != nil {
			return nil, fmt.Errorf("unroutable href %q: %w", href, err)
		}
		return Notes{StorageID: storageID, FolderPath: folderPath}, nil
	case strings.HasPrefix(tail, "tags/"):
		tag := strings.TrimPrefix(tail, "tags/")
		if tag == "" || strings.Contains(tag, "/") {
			return nil, fmt.Errorf("unroutable href %q: bad tag", href)
		}
		return Tag{StorageID: storageID, Tag: tag}, nil
	case tail == "trashcan":
		return Trash{StorageID: storageID}, nil
	}
	return nil, fmt.Errorf("unroutable href %q", href)
}
