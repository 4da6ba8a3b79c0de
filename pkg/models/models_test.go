package models

import (
	"reflect"
	"testing"
	"time"
)

func TestStorageValidate(t *testing.T) {
	tests := []struct {
		name    string
		storage Storage
		isValid bool
	}{
		{
			name:    "valid",
			storage: Storage{ID: "s1", Name: "Work", FolderMap: map[string]*Folder{"/": {Path: "/"}}},
			isValid: true,
		},
		{
			name:    "missing id",
			storage: Storage{Name: "Work"},
			isValid: false,
		},
		{
			name:    "blank name",
			storage: Storage{ID: "s1", Name: "   "},
			isValid: false,
		},
		{
			name:    "unnormalized folder",
			storage: Storage{ID: "s1", Name: "Work", FolderMap: map[string]*Folder{"/a/": {Path: "/a/"}}},
			isValid: false,
		},
		{
			name:    "unrooted folder",
			storage: Storage{ID: "s1", Name: "Work", FolderMap: map[string]*Folder{"a/b": {Path: "a/b"}}},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.storage.Validate()
			if tt.isValid && err != nil {
				t.Errorf("expected valid storage, got error: %v", err)
			}
			if !tt.isValid && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestFolderPathsSorted(t *testing.T) {
	s := Storage{
		ID:   "s1",
		Name: "Work",
		FolderMap: map[string]*Folder{
			"/c":   {Path: "/c"},
			"/":    {Path: "/"},
			"/a/b": {Path: "/a/b"},
			"/a":   {Path: "/a"},
		},
	}

	got := s.FolderPaths()
	want := []string{"/", "/a", "/a/b", "/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FolderPaths() = %v, want %v", got, want)
	}
}

func TestTagNamesSorted(t *testing.T) {
	now := time.Now()
	s := Storage{
		ID:   "s1",
		Name: "Work",
		TagMap: map[string]*Tag{
			"zeta":  {Name: "zeta", CreatedAt: now},
			"alpha": {Name: "alpha", CreatedAt: now},
		},
	}

	got := s.TagNames()
	want := []string{"alpha", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagNames() = %v, want %v", got, want)
	}
}

func TestValidateTagName(t *testing.T) {
	tests := []struct {
		tag     string
		isValid bool
	}{
		{"work", true},
		{"go-lang", true},
		{"", false},
		{"a/b", false},
		{"two words", false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			err := ValidateTagName(tt.tag)
			if tt.isValid && err != nil {
				t.Errorf("expected %q valid, got %v", tt.tag, err)
			}
			if !tt.isValid && err == nil {
				t.Errorf("expected %q invalid", tt.tag)
			}
		})
	}
}
