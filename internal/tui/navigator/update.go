package navigator

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/notehaven/notehaven/internal/tui/components/dialog"
	"github.com/notehaven/notehaven/internal/tui/components/menu"
	"github.com/notehaven/notehaven/pkg/pathutil"
	"github.com/notehaven/notehaven/pkg/route"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.adjustScroll()
		return m, nil

	case storagesLoadedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("load storages: %v", msg.err)
			return m, nil
		}
		m.storages = msg.storages
		m.loaded = true
		m.rebuildForest()
		return m, nil

	case notesLoadedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("load notes: %v", msg.err)
			return m, nil
		}
		m.currentRoute = msg.route
		m.notes = msg.notes
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("%s: %v", msg.op, msg.err)
		} else {
			m.statusMessage = ""
		}
		// Refresh regardless of the outcome; the action may have
		// partially applied.
		cmds := []tea.Cmd{fetchStoragesCmd(m.lib)}
		if m.currentRoute != nil {
			cmds = append(cmds, fetchNotesCmd(m.lib, m.currentRoute))
		}
		return m, tea.Batch(cmds...)

	case libraryChangedMsg:
		cmds := []tea.Cmd{fetchStoragesCmd(m.lib), waitForChangeCmd(m.watcher)}
		if m.currentRoute != nil {
			cmds = append(cmds, fetchNotesCmd(m.lib, m.currentRoute))
		}
		return m, tea.Batch(cmds...)

	case dialog.OpenPromptMsg, dialog.OpenMessageBoxMsg:
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd

	case menu.OpenMsg:
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.dialog.Active() {
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		if m.menu.Active() {
			m.menu, cmd = m.menu.Update(msg)
			return m, cmd
		}
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}

	// Non-key messages keep the active input's cursor blinking.
	if m.dialog.Active() {
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}
	if m.filtering {
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateFilter feeds keys into the filter input. Enter keeps the filter
// and returns to the tree, esc drops it.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.rebuildRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildRows()
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		m.cursor = 0
		m.adjustScroll()
		return m, nil

	case key.Matches(msg, m.keys.GoToBottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFold):
		if r := m.currentRow(); r != nil && len(r.node.Children) > 0 {
			m.collapsed[r.key] = !m.collapsed[r.key]
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenMenu):
		if r := m.currentRow(); r != nil && r.node.Menu != nil {
			return m, menu.Open(r.node.Name, r.node.Menu())
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		r := m.currentRow()
		if r == nil {
			return m, nil
		}
		if r.node.Href == "" {
			if len(r.node.Children) > 0 {
				m.collapsed[r.key] = !m.collapsed[r.key]
				m.rebuildRows()
			}
			return m, nil
		}
		target, err := route.Parse(r.node.Href)
		if err != nil {
			m.statusMessage = err.Error()
			return m, nil
		}
		return m, fetchNotesCmd(m.lib, target)

	case key.Matches(msg, m.keys.NewNote):
		storageID, folderPath, ok := m.noteTarget()
		if !ok {
			m.statusMessage = "select a storage or folder first"
			return m, nil
		}
		return m, newNotePrompt(m.lib, storageID, folderPath)

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keys.ClearFilter):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.statusMessage = ""
		cmds := []tea.Cmd{fetchStoragesCmd(m.lib)}
		if m.currentRoute != nil {
			cmds = append(cmds, fetchNotesCmd(m.lib, m.currentRoute))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

// noteTarget picks the storage and folder a new note should land in,
// from the selected row.
func (m Model) noteTarget() (storageID, folderPath string, ok bool) {
	r := m.currentRow()
	if r == nil || r.node.Href == "" {
		return "", "", false
	}
	target, err := route.Parse(r.node.Href)
	if err != nil {
		return "", "", false
	}
	switch target := target.(type) {
	case route.Storage:
		return target.StorageID, pathutil.Root, true
	case route.Notes:
		folder := target.FolderPath
		if folder == "" {
			folder = pathutil.Root
		}
		return target.StorageID, folder, true
	}
	return "", "", false
}
