package navtree

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notehaven/notehaven/pkg/pathutil"
	"github.com/notehaven/notehaven/pkg/route"
)

// MenuItem is one entry of a node's context menu. The zero value of
// Disabled means the item is selectable. OnSelect runs when the item is
// chosen; a nil OnSelect makes selection a no-op.
type MenuItem struct {
	Label    string
	Disabled bool
	OnSelect tea.Cmd
}

// MenuFunc produces the context-menu items for a node at the moment the
// menu is opened.
type MenuFunc func() []MenuItem

// FolderMenuFunc returns the menu for the folder at the given absolute
// path. ConvertTree calls it once per folder node.
type FolderMenuFunc func(folderPath string) MenuFunc

// Node is one entry of the rendered navigation tree. Children is always
// non-nil, possibly empty, so consumers can recurse without nil checks.
type Node struct {
	Name     string
	Href     string
	Icon     string
	Menu     MenuFunc
	Children []*Node
}

// ConvertTree turns a PathTree into display nodes. parentPath is the
// absolute folder path the trie's root represents, normally
// pathutil.Root. Each trie child becomes exactly one node, in trie
// order, with an href into the storage's note list for that folder and
// a menu from menuFor (nil menuFor leaves menus unset). The conversion
// never invents nodes beyond the trie's entries.
func ConvertTree(t *PathTree, storageID, parentPath string, menuFor FolderMenuFunc) []*Node {
	names := t.ChildNames()
	nodes := make([]*Node, 0, len(names))
	for _, name := range names {
		folderPath := pathutil.Join(parentPath, name)
		node := &Node{
			Name:     name,
			Href:     route.Notes{StorageID: storageID, FolderPath: folderPath}.Href(),
			Children: ConvertTree(t.Child(name), storageID, folderPath, menuFor),
		}
		if menuFor != nil {
			node.Menu = menuFor(folderPath)
		}
		nodes = append(nodes, node)
	}
	return nodes
}
