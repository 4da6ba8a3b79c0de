package navigator

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/notehaven/notehaven/internal/tui/keymap"
)

// KeyMap defines the keybindings for the navigator TUI
type KeyMap struct {
	keymap.Base
	ToggleFold  key.Binding
	OpenMenu    key.Binding
	NewNote     key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	Refresh     key.Binding
	GoToTop     key.Binding
	GoToBottom  key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenMenu, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, []key.Binding{
		k.ToggleFold,
		k.OpenMenu,
		k.NewNote,
		k.Refresh,
	}, []key.Binding{
		k.Filter,
		k.GoToTop,
		k.GoToBottom,
	})
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	ToggleFold: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "fold/unfold"),
	),
	OpenMenu: key.NewBinding(
		key.WithKeys("m", "right"),
		key.WithHelp("m", "context menu"),
	),
	NewNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	ClearFilter: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "refresh"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "go to bottom"),
	),
}
