// Package navtree builds the navigation tree shown for a storage: a
// trie over folder path segments and the display nodes derived from it.
package navtree

import (
	"github.com/notehaven/notehaven/pkg/pathutil"
)

// PathTree is a trie keyed by folder path segment. Children iterate in
// the order their segments were first seen, so callers control display
// order through the order of the input paths. A PathTree is built fresh
// per refresh and never mutated afterwards.
type PathTree struct {
	order    []string
	children map[string]*PathTree
}

// BuildPathTree converts folder paths into a PathTree. The root path "/"
// contributes no node; every other path contributes one node per
// segment, sharing prefixes with previously seen paths. Empty segments
// (doubled slashes) are skipped rather than mis-nested.
func BuildPathTree(paths []string) *PathTree {
	root := &PathTree{}
	for _, path := range paths {
		node := root
		for _, seg := range pathutil.Segments(path) {
			node = node.ensure(seg)
		}
	}
	return root
}

func (t *PathTree) ensure(name string) *PathTree {
	if child, ok := t.children[name]; ok {
		return child
	}
	if t.children == nil {
		t.children = make(map[string]*PathTree)
	}
	child := &PathTree{}
	t.children[name] = child
	t.order = append(t.order, name)
	return child
}

// ChildNames returns the direct child segments in first-seen order.
func (t *PathTree) ChildNames() []string {
	return t.order
}

// Child returns the subtree for a direct child segment, or nil.
func (t *PathTree) Child(name string) *PathTree {
	return t.children[name]
}

// Contains reports whether every segment of path is present in the trie.
// The root path is always contained.
func (t *PathTree) Contains(path string) bool {
	node := t
	for _, seg := range pathutil.Segments(path) {
		node = node.Child(seg)
		if node == nil {
			return false
		}
	}
	return true
}
