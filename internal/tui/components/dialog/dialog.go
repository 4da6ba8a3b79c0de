// Package dialog implements the modal prompt and message box. A host
// model keeps one dialog Model, routes messages through it while it is
// active, and receives the outcome through the OnClose callback of the
// config that opened it. Cancelling a dialog reports a null result and
// must cause no action.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/notehaven/notehaven/internal/tui/theme"
)

// PromptConfig describes a text input dialog. OnClose receives the
// entered value with ok=true, or ok=false when the prompt was
// cancelled.
type PromptConfig struct {
	Title   string
	Message string
	Default string
	OnClose func(value string, ok bool) tea.Cmd
}

// MessageBoxConfig describes a button dialog. OnClose receives the
// chosen button index; Esc reports CancelButton, or -1 when that index
// is not a valid button.
type MessageBoxConfig struct {
	Title         string
	Message       string
	Buttons       []string
	DefaultButton int
	CancelButton  int
	OnClose       func(choice int) tea.Cmd
}

// OpenPromptMsg activates the dialog in prompt mode.
type OpenPromptMsg struct {
	Config PromptConfig
}

// OpenMessageBoxMsg activates the dialog in message box mode.
type OpenMessageBoxMsg struct {
	Config MessageBoxConfig
}

// OpenPrompt returns a command that opens a prompt dialog.
func OpenPrompt(cfg PromptConfig) tea.Cmd {
	return func() tea.Msg { return OpenPromptMsg{Config: cfg} }
}

// OpenMessageBox returns a command that opens a message box.
func OpenMessageBox(cfg MessageBoxConfig) tea.Cmd {
	return func() tea.Msg { return OpenMessageBoxMsg{Config: cfg} }
}

type mode int

const (
	inactive mode = iota
	promptMode
	messageBoxMode
)

// Model represents the one dialog a host can show at a time.
type Model struct {
	mode   mode
	prompt PromptConfig
	box    MessageBoxConfig
	input  textinput.Model
	choice int
	keys   keyMap
}

// New creates an inactive dialog model.
func New() Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 48
	return Model{
		input: ti,
		keys:  defaultKeyMap,
	}
}

// Active reports whether a dialog is currently shown.
func (m Model) Active() bool {
	return m.mode != inactive
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenPromptMsg:
		m.mode = promptMode
		m.prompt = msg.Config
		m.input.SetValue(msg.Config.Default)
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case OpenMessageBoxMsg:
		m.mode = messageBoxMode
		m.box = msg.Config
		m.choice = msg.Config.DefaultButton
		if m.choice < 0 || m.choice >= len(m.box.Buttons) {
			m.choice = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case promptMode:
			return m.updatePrompt(msg)
		case messageBoxMode:
			return m.updateMessageBox(msg)
		}
		return m, nil
	}

	if m.mode == promptMode {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		onClose := m.prompt.OnClose
		value := m.input.Value()
		m.close()
		if onClose == nil {
			return m, nil
		}
		return m, onClose(value, true)

	case key.Matches(msg, m.keys.Cancel):
		onClose := m.prompt.OnClose
		m.close()
		if onClose == nil {
			return m, nil
		}
		return m, onClose("", false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateMessageBox(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.choice > 0 {
			m.choice--
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.choice < len(m.box.Buttons)-1 {
			m.choice++
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		onClose := m.box.OnClose
		choice := m.choice
		m.close()
		if onClose == nil {
			return m, nil
		}
		return m, onClose(choice)

	case key.Matches(msg, m.keys.Cancel):
		onClose := m.box.OnClose
		choice := m.box.CancelButton
		if choice < 0 || choice >= len(m.box.Buttons) {
			choice = -1
		}
		m.close()
		if onClose == nil {
			return m, nil
		}
		return m, onClose(choice)
	}
	return m, nil
}

func (m *Model) close() {
	m.mode = inactive
	m.input.Blur()
	m.prompt = PromptConfig{}
	m.box = MessageBoxConfig{}
}

func (m Model) View() string {
	switch m.mode {
	case promptMode:
		return m.viewPrompt()
	case messageBoxMode:
		return m.viewMessageBox()
	}
	return ""
}

func (m Model) viewPrompt() string {
	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render(m.prompt.Title))
	b.WriteString("\n")
	if m.prompt.Message != "" {
		b.WriteString(theme.DefaultTheme.Muted.Render(m.prompt.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())

	box := dialogBoxStyle.Render(b.String())
	hint := hintStyle.Width(lipgloss.Width(box)).Render("enter confirm · esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

func (m Model) viewMessageBox() string {
	var b strings.Builder
	b.WriteString(theme.DefaultTheme.Header.Render(m.box.Title))
	b.WriteString("\n")
	if m.box.Message != "" {
		b.WriteString(m.box.Message)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	buttons := make([]string, 0, len(m.box.Buttons))
	for i, label := range m.box.Buttons {
		if i == m.choice {
			buttons = append(buttons, selectedButtonStyle.Render(" "+label+" "))
		} else {
			buttons = append(buttons, buttonStyle.Render(" "+label+" "))
		}
	}
	b.WriteString(strings.Join(buttons, "  "))

	box := dialogBoxStyle.Render(b.String())
	hint := hintStyle.Width(lipgloss.Width(box)).Render("←/→ choose · enter confirm · esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, box, hint)
}

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.DefaultTheme.Colors.Accent).
			Padding(1, 2)

	buttonStyle = lipgloss.NewStyle().
			Foreground(theme.DefaultTheme.Colors.Muted)

	selectedButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("236"))

	hintStyle = lipgloss.NewStyle().
			Faint(true).
			Align(lipgloss.Center)
)

type keyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Left    key.Binding
	Right   key.Binding
}

var defaultKeyMap = keyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "shift+tab"),
		key.WithHelp("←", "previous button"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "tab"),
		key.WithHelp("→", "next button"),
	),
}
