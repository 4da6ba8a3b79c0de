package navigator

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/notehaven/notehaven/internal/tui/components/dialog"
	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/navtree"
	"github.com/notehaven/notehaven/pkg/pathutil"
	"github.com/notehaven/notehaven/pkg/route"
)

const (
	iconStorage = "▣"
	iconNotes   = "≡"
	iconTag     = "#"
	iconTrash   = "⊘"
)

// Actions are the storage mutations the navigation tree can trigger.
// Implementations run off the event loop; completion comes back as an
// actionDoneMsg and the tree refreshes through the usual reload, so
// none of the menu or dialog code waits on results.
type Actions interface {
	CreateFolder(storageID, folderPath string) error
	RemoveFolder(storageID, folderPath string) error
	RenameStorage(storageID, name string) error
	RemoveStorage(storageID string) error
}

// Item builds the navigation subtree for one storage: the storage node
// on top, then Notes, the folder tree, Tags and Trash Can below it.
// The folder nodes are cached per (storage id, revision) because they
// are the only expensive part; the rest is rebuilt on every refresh.
type Item struct {
	actions Actions

	cachedID    string
	cachedRev   int64
	cachedNodes []*navtree.Node
}

// NewItem creates an item bound to its action callbacks.
func NewItem(actions Actions) *Item {
	return &Item{actions: actions}
}

// Node renders the storage's subtree.
func (it *Item) Node(s *models.Storage) *navtree.Node {
	children := []*navtree.Node{it.notesNode(s)}
	children = append(children, it.folderNodes(s)...)
	children = append(children, it.tagsNode(s), it.trashNode(s))

	return &navtree.Node{
		Name:     s.Name,
		Href:     route.Storage{StorageID: s.ID}.Href(),
		Icon:     iconStorage,
		Menu:     it.storageMenu(s),
		Children: children,
	}
}

// notesNode is the synthetic entry for the storage's root folder. It
// carries the root folder's menu, so New Folder is reachable without
// any real folder existing yet.
func (it *Item) notesNode(s *models.Storage) *navtree.Node {
	return &navtree.Node{
		Name:     "Notes",
		Href:     route.Notes{StorageID: s.ID, FolderPath: pathutil.Root}.Href(),
		Icon:     iconNotes,
		Menu:     it.folderMenu(s.ID)(pathutil.Root),
		Children: []*navtree.Node{},
	}
}

func (it *Item) folderNodes(s *models.Storage) []*navtree.Node {
	if it.cachedNodes != nil && it.cachedID == s.ID && it.cachedRev == s.Rev {
		return it.cachedNodes
	}

	tree := navtree.BuildPathTree(s.FolderPaths())
	nodes := navtree.ConvertTree(tree, s.ID, pathutil.Root, it.folderMenu(s.ID))

	it.cachedID = s.ID
	it.cachedRev = s.Rev
	it.cachedNodes = nodes
	return nodes
}

func (it *Item) tagsNode(s *models.Storage) *navtree.Node {
	names := s.TagNames()
	children := make([]*navtree.Node, 0, len(names))
	for _, name := range names {
		children = append(children, &navtree.Node{
			Name:     name,
			Href:     route.Tag{StorageID: s.ID, Tag: name}.Href(),
			Icon:     iconTag,
			Children: []*navtree.Node{},
		})
	}
	return &navtree.Node{
		Name:     "Tags",
		Icon:     iconTag,
		Children: children,
	}
}

func (it *Item) trashNode(s *models.Storage) *navtree.Node {
	return &navtree.Node{
		Name:     "Trash Can",
		Href:     route.Trash{StorageID: s.ID}.Href(),
		Icon:     iconTrash,
		Children: []*navtree.Node{},
	}
}

func (it *Item) storageMenu(s *models.Storage) navtree.MenuFunc {
	storageID, name := s.ID, s.Name
	return func() []navtree.MenuItem {
		return []navtree.MenuItem{
			{Label: "New Folder", OnSelect: it.newFolderPrompt(storageID, pathutil.Root)},
			{Label: "Rename Storage", OnSelect: it.renameStoragePrompt(storageID, name)},
			{Label: "Remove Storage", OnSelect: it.removeStorageConfirm(storageID, name)},
		}
	}
}

func (it *Item) folderMenu(storageID string) navtree.FolderMenuFunc {
	return func(folderPath string) navtree.MenuFunc {
		return func() []navtree.MenuItem {
			return []navtree.MenuItem{
				{Label: "New Folder", OnSelect: it.newFolderPrompt(storageID, folderPath)},
				{
					Label:    "Remove Folder",
					Disabled: pathutil.IsRoot(folderPath),
					OnSelect: it.removeFolderConfirm(storageID, folderPath),
				},
			}
		}
	}
}

// newFolderPrompt asks for the new folder's full path. The suggested
// value is "/" on the root and "{path}/" everywhere else, so typing
// appends a child segment.
func (it *Item) newFolderPrompt(storageID, folderPath string) tea.Cmd {
	def := pathutil.Root
	if !pathutil.IsRoot(folderPath) {
		def = folderPath + "/"
	}
	return dialog.OpenPrompt(dialog.PromptConfig{
		Title:   "New Folder",
		Message: "Folder path",
		Default: def,
		OnClose: func(value string, ok bool) tea.Cmd {
			if !ok {
				return nil
			}
			return runAction("create folder", func() error {
				return it.actions.CreateFolder(storageID, value)
			})
		},
	})
}

func (it *Item) renameStoragePrompt(storageID, current string) tea.Cmd {
	return dialog.OpenPrompt(dialog.PromptConfig{
		Title:   "Rename Storage",
		Message: "Storage name",
		Default: current,
		OnClose: func(value string, ok bool) tea.Cmd {
			if !ok {
				return nil
			}
			return runAction("rename storage", func() error {
				return it.actions.RenameStorage(storageID, value)
			})
		},
	})
}

func (it *Item) removeStorageConfirm(storageID, name string) tea.Cmd {
	return dialog.OpenMessageBox(dialog.MessageBoxConfig{
		Title:         fmt.Sprintf("Remove %q storage", name),
		Message:       "All notes and folders in the storage will be removed.",
		Buttons:       []string{"Remove Storage", "Cancel"},
		DefaultButton: 0,
		CancelButton:  1,
		OnClose: func(choice int) tea.Cmd {
			if choice != 0 {
				return nil
			}
			return runAction("remove storage", func() error {
				return it.actions.RemoveStorage(storageID)
			})
		},
	})
}

func (it *Item) removeFolderConfirm(storageID, folderPath string) tea.Cmd {
	return dialog.OpenMessageBox(dialog.MessageBoxConfig{
		Title:         fmt.Sprintf("Remove %q folder", folderPath),
		Message:       "Notes in the folder will be moved to the trash.",
		Buttons:       []string{"Remove Folder", "Cancel"},
		DefaultButton: 0,
		CancelButton:  1,
		OnClose: func(choice int) tea.Cmd {
			if choice != 0 {
				return nil
			}
			return runAction("remove folder", func() error {
				return it.actions.RemoveFolder(storageID, folderPath)
			})
		},
	})
}
