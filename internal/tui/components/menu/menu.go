// Package menu implements the context-menu popup for navigation nodes.
// Selecting an item closes the menu and runs the item's command;
// disabled items cannot be selected, and Esc closes without running
// anything.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notehaven/notehaven/internal/tui/theme"
	"github.com/notehaven/notehaven/pkg/navtree"
)

// OpenMsg activates the menu with the given items.
type OpenMsg struct {
	Title string
	Items []navtree.MenuItem
}

// Open returns a command that opens the menu. Opening with no items is
// a no-op.
func Open(title string, items []navtree.MenuItem) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Title: title, Items: items} }
}

// Model represents the popup menu.
type Model struct {
	active bool
	title  string
	items  []navtree.MenuItem
	cursor int
	keys   keyMap
}

// New creates an inactive menu model.
func New() Model {
	return Model{keys: defaultKeyMap}
}

// Active reports whether the menu is currently shown.
func (m Model) Active() bool {
	return m.active
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenMsg:
		if len(msg.Items) == 0 {
			return m, nil
		}
		m.active = true
		m.title = msg.Title
		m.items = msg.Items
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			item := m.items[m.cursor]
			if item.Disabled {
				return m, nil
			}
			m.active = false
			return m, item.OnSelect
		case key.Matches(msg, m.keys.Cancel):
			m.active = false
		}
	}
	return m, nil
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render(m.title))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label
		switch {
		case item.Disabled:
			line = disabledStyle.Render(line)
		case i == m.cursor:
			line = theme.DefaultTheme.Highlight.Render("│ " + item.Label)
		}
		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	return menuBoxStyle.Render(b.String())
}

var (
	menuBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.DefaultTheme.Colors.Accent).
			Padding(0, 1)

	disabledStyle = lipgloss.NewStyle().Faint(true)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "close"),
	),
}
