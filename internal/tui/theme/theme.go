// Package theme holds the colors and styles shared by the TUI packages.
package theme

import "github.com/charmbracelet/lipgloss"

// Colors are the named colors the styles build on.
type Colors struct {
	Accent lipgloss.Color
	Info   lipgloss.Color
	Muted  lipgloss.Color
	Danger lipgloss.Color
}

// Theme groups the styles used across views and components.
type Theme struct {
	Colors Colors

	Header    lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Danger    lipgloss.Style
}

// DefaultTheme is used by every view.
var DefaultTheme = newDefault()

func newDefault() Theme {
	colors := Colors{
		Accent: lipgloss.Color("214"),
		Info:   lipgloss.Color("39"),
		Muted:  lipgloss.Color("241"),
		Danger: lipgloss.Color("196"),
	}

	return Theme{
		Colors:    colors,
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colors.Accent),
		Info:      lipgloss.NewStyle().Foreground(colors.Info),
		Highlight: lipgloss.NewStyle().Foreground(colors.Accent),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Muted:     lipgloss.NewStyle().Foreground(colors.Muted),
		Danger:    lipgloss.NewStyle().Foreground(colors.Danger),
	}
}
