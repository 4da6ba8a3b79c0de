// Package keymap holds the key bindings every TUI model starts from.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Base is the common binding set. Models embed it and add their own
// bindings on top.
type Base struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// NewBase returns the default common bindings.
func NewBase() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (b Base) ShortHelp() []key.Binding {
	return []key.Binding{b.Help, b.Quit}
}

func (b Base) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Up, b.Down, b.Enter},
		{b.Help, b.Quit},
	}
}
