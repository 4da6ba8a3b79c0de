package pathutil

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"root", "/", "/", false},
		{"simple", "/notes", "/notes", false},
		{"nested", "/a/b/c", "/a/b/c", false},
		{"trailing slash", "/a/b/", "/a/b", false},
		{"double slashes", "/a//b", "/a/b", false},
		{"only slashes", "///", "/", false},
		{"empty", "", "", true},
		{"relative", "a/b", "", true},
		{"unrooted dot", "./a", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Normalize(%q) expected error, got %q", tt.in, got)
				}
				if !errors.Is(err, ErrInvalidPath) {
					t.Errorf("expected ErrInvalidPath, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeAppliesNFC(t *testing.T) {
	// "e" followed by a combining acute accent normalizes to a single rune.
	decomposed := "/café"
	got, err := Normalize(decomposed)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "/café" {
		t.Errorf("expected NFC form %q, got %q", "/café", got)
	}
}

func TestSegments(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"/", nil},
		{"/a", []string{"a"}},
		{"/a/b/c", []string{"a", "b", "c"}},
		{"/a//b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := Segments(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segments(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParentAndName(t *testing.T) {
	tests := []struct {
		path       string
		wantParent string
		wantName   string
	}{
		{"/", "/", ""},
		{"/a", "/", "a"},
		{"/a/b", "/a", "b"},
		{"/a/b/c", "/a/b", "c"},
	}

	for _, tt := range tests {
		if got := Parent(tt.path); got != tt.wantParent {
			t.Errorf("Parent(%q) = %q, want %q", tt.path, got, tt.wantParent)
		}
		if got := Name(tt.path); got != tt.wantName {
			t.Errorf("Name(%q) = %q, want %q", tt.path, got, tt.wantName)
		}
	}
}

func TestJoin(t *testing.T) {
	if got := Join("/", "a"); got != "/a" {
		t.Errorf("Join(/, a) = %q, want /a", got)
	}
	if got := Join("/a", "b"); got != "/a/b" {
		t.Errorf("Join(/a, b) = %q, want /a/b", got)
	}
}

func TestPrefixes(t *testing.T) {
	got := Prefixes("/a/b/c")
	want := []string{"/a", "/a/b", "/a/b/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Prefixes(/a/b/c) = %v, want %v", got, want)
	}

	if got := Prefixes("/"); len(got) != 0 {
		t.Errorf("Prefixes(/) = %v, want empty", got)
	}
}

func TestIsAncestor(t *testing.T) {
	tests := []struct {
		ancestor string
		path     string
		want     bool
	}{
		{"/", "/a", true},
		{"/", "/", false},
		{"/a", "/a/b", true},
		{"/a", "/a/b/c", true},
		{"/a", "/ab", false},
		{"/a", "/a", false},
		{"/a/b", "/a", false},
	}

	for _, tt := range tests {
		if got := IsAncestor(tt.ancestor, tt.path); got != tt.want {
			t.Errorf("IsAncestor(%q, %q) = %v, want %v", tt.ancestor, tt.path, got, tt.want)
		}
	}
}
