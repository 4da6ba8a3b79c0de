// Package pathutil handles folder path strings: slash-delimited, always
// rooted at "/", with no trailing slash except for the root itself.
package pathutil

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Root is the path of the implicit top-level folder of every storage.
const Root = "/"

// ErrInvalidPath is returned for paths that cannot be normalized into a
// rooted folder path.
var ErrInvalidPath = errors.New("invalid folder path")

// Normalize canonicalizes a folder path: Unicode NFC, duplicate slashes
// collapsed, trailing slash stripped. The input must start with "/";
// anything else is rejected rather than silently mis-nested.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: %q does not start with /", ErrInvalidPath, path)
	}

	segs := Segments(norm.NFC.String(path))
	if len(segs) == 0 {
		return Root, nil
	}
	return "/" + strings.Join(segs, "/"), nil
}

// IsRoot reports whether path is the root folder path.
func IsRoot(path string) bool {
	return path == Root
}

// Segments splits a path into its non-empty segments. "/a/b" yields
// ["a", "b"]; the root yields an empty slice.
func Segments(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// Name returns the last segment of a path, or "" for the root.
func Name(path string) string {
	segs := Segments(path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Parent returns the parent folder path; the root is its own parent.
func Parent(path string) string {
	segs := Segments(path)
	if len(segs) <= 1 {
		return Root
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/")
}

// Join appends a child name to a parent folder path.
func Join(parent, name string) string {
	if IsRoot(parent) {
		return "/" + name
	}
	return parent + "/" + name
}

// Prefixes returns every ancestor path of a normalized path including the
// path itself, shortest first. The root yields an empty slice.
//
//	Prefixes("/a/b/c") == ["/a", "/a/b", "/a/b/c"]
func Prefixes(path string) []string {
	segs := Segments(path)
	prefixes := make([]string, 0, len(segs))
	current := ""
	for _, seg := range segs {
		current += "/" + seg
		prefixes = append(prefixes, current)
	}
	return prefixes
}

// IsAncestor reports whether path lies strictly inside ancestor.
// The root is an ancestor of every other path; "/a" is an ancestor of
// "/a/b" but not of "/ab".
func IsAncestor(ancestor, path string) bool {
	if ancestor == path {
		return false
	}
	if IsRoot(ancestor) {
		return path != Root
	}
	return strings.HasPrefix(path, ancestor+"/")
}
