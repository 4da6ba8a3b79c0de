// Package navigator is the storage navigation TUI: one line per
// storage, folder, tag and trash entry, with context menus for the
// mutations and a note list for whatever entry is selected.
package navigator

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notehaven/notehaven/internal/tui/components/dialog"
	"github.com/notehaven/notehaven/internal/tui/components/menu"
	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/navtree"
	"github.com/notehaven/notehaven/pkg/route"
)

// row is one visible line of the rendered tree.
type row struct {
	node  *navtree.Node
	depth int
	key   string
}

// Model is the main model for the navigator TUI
type Model struct {
	lib     *library.Library
	watcher *library.Watcher

	// one item per storage so folder subtrees stay memoized across
	// refreshes
	items    map[string]*Item
	storages []*models.Storage
	forest   []*navtree.Node
	rows     []*row

	cursor       int
	scrollOffset int
	collapsed    map[string]bool

	// filter narrows the tree to matching rows; folds are ignored
	// while it is set
	filterInput textinput.Model
	filtering   bool

	currentRoute route.Route
	notes        []*models.Note

	dialog dialog.Model
	menu   menu.Model

	keys          KeyMap
	help          help.Model
	width         int
	height        int
	statusMessage string
	loaded        bool
}

// New creates the navigator model. The watcher may be nil; without it
// the view only refreshes on its own mutations and the R key.
func New(lib *library.Library, watcher *library.Watcher) Model {
	fi := textinput.New()
	fi.Prompt = "/"
	fi.CharLimit = 64
	fi.Width = treePaneWidth - 6

	return Model{
		lib:         lib,
		watcher:     watcher,
		items:       make(map[string]*Item),
		collapsed:   make(map[string]bool),
		filterInput: fi,
		dialog:      dialog.New(),
		menu:        menu.New(),
		keys:        keys,
		help:        help.New(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchStoragesCmd(m.lib),
		waitForChangeCmd(m.watcher),
	)
}

// rebuildForest re-renders every storage subtree and the flat row list.
func (m *Model) rebuildForest() {
	m.forest = m.forest[:0]
	alive := make(map[string]bool, len(m.storages))
	for _, s := range m.storages {
		alive[s.ID] = true
		item := m.items[s.ID]
		if item == nil {
			item = NewItem(m.lib)
			m.items[s.ID] = item
		}
		m.forest = append(m.forest, item.Node(s))
	}
	for id := range m.items {
		if !alive[id] {
			delete(m.items, id)
		}
	}
	m.rebuildRows()
}

func (m *Model) rebuildRows() {
	m.rows = m.rows[:0]
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	for _, node := range m.forest {
		if query == "" {
			m.appendRows(node, 0, "")
		} else {
			m.appendFilteredRows(node, 0, "", query)
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

// appendRows flattens a node into rows, honoring collapsed state. Rows
// need stable keys across rebuilds; href-less group nodes fall back to
// the parent key plus their name.
func (m *Model) appendRows(node *navtree.Node, depth int, parentKey string) {
	key := node.Href
	if key == "" {
		key = parentKey + "#" + node.Name
	}
	m.rows = append(m.rows, &row{node: node, depth: depth, key: key})
	if m.collapsed[key] {
		return
	}
	for _, child := range node.Children {
		m.appendRows(child, depth+1, key)
	}
}

// appendFilteredRows keeps rows whose name matches the filter plus the
// ancestors above them, so matches stay in context. Returns whether
// anything under node survived.
func (m *Model) appendFilteredRows(node *navtree.Node, depth int, parentKey, query string) bool {
	key := node.Href
	if key == "" {
		key = parentKey + "#" + node.Name
	}
	mark := len(m.rows)
	m.rows = append(m.rows, &row{node: node, depth: depth, key: key})

	kept := strings.Contains(strings.ToLower(node.Name), query)
	for _, child := range node.Children {
		if m.appendFilteredRows(child, depth+1, key, query) {
			kept = true
		}
	}
	if !kept {
		m.rows = m.rows[:mark]
	}
	return kept
}

func (m *Model) adjustScroll() {
	viewportHeight := m.treeViewportHeight()
	if viewportHeight <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewportHeight {
		m.scrollOffset = m.cursor - viewportHeight + 1
	}
}

func (m Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}
