package navigator

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notehaven/notehaven/internal/tui/components/dialog"
	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/pathutil"
	"github.com/notehaven/notehaven/pkg/route"
)

type storagesLoadedMsg struct {
	storages []*models.Storage
	err      error
}

type notesLoadedMsg struct {
	route route.Route
	notes []*models.Note
	err   error
}

// actionDoneMsg reports a finished mutation. Only failures surface to
// the user, in the status bar; the tree catches up via the reload that
// follows every completion.
type actionDoneMsg struct {
	op  string
	err error
}

type libraryChangedMsg struct{}

// runAction runs one mutation off the event loop.
func runAction(op string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{op: op, err: fn()}
	}
}

func fetchStoragesCmd(lib *library.Library) tea.Cmd {
	return func() tea.Msg {
		storages, err := lib.Storages()
		return storagesLoadedMsg{storages: storages, err: err}
	}
}

func fetchNotesCmd(lib *library.Library, r route.Route) tea.Cmd {
	return func() tea.Msg {
		var notes []*models.Note
		var err error
		switch r := r.(type) {
		case route.Storage:
			notes, err = lib.Notes(r.StorageID, pathutil.Root)
		case route.Notes:
			folder := r.FolderPath
			if folder == "" {
				folder = pathutil.Root
			}
			notes, err = lib.Notes(r.StorageID, folder)
		case route.Tag:
			notes, err = lib.NotesByTag(r.StorageID, r.Tag)
		case route.Trash:
			notes, err = lib.TrashedNotes(r.StorageID)
		}
		return notesLoadedMsg{route: r, notes: notes, err: err}
	}
}

// waitForChangeCmd blocks on the watcher until the index changes. The
// update loop re-arms it after every libraryChangedMsg.
func waitForChangeCmd(w *library.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return libraryChangedMsg{}
	}
}

// newNotePrompt asks for a title and creates the note in the given
// folder.
func newNotePrompt(lib *library.Library, storageID, folderPath string) tea.Cmd {
	return dialog.OpenPrompt(dialog.PromptConfig{
		Title:   "New Note",
		Message: "Note title",
		OnClose: func(value string, ok bool) tea.Cmd {
			if !ok {
				return nil
			}
			return runAction("create note", func() error {
				_, err := lib.CreateNote(storageID, library.NoteParams{
					Title:      value,
					FolderPath: folderPath,
				})
				return err
			})
		},
	})
}
