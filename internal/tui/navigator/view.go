package navigator

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/notehaven/notehaven/internal/tui/theme"
	"github.com/notehaven/notehaven/pkg/route"
)

const treePaneWidth = 36

func (m Model) View() string {
	if !m.loaded {
		return "Loading..."
	}

	header := theme.DefaultTheme.Header.Render("Notehaven")
	if m.currentRoute != nil {
		header += "  " + theme.DefaultTheme.Info.Render("["+routeLabel(m.currentRoute)+"]")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		treePaneStyle.Width(treePaneWidth).Render(m.renderTree()),
		m.renderNotes(),
	)

	status := ""
	if m.statusMessage != "" {
		status = theme.DefaultTheme.Danger.Render(m.statusMessage)
	}

	footer := m.help.View(m.keys)

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		status,
		footer,
	)

	if m.dialog.Active() {
		return m.overlay(m.dialog.View())
	}
	if m.menu.Active() {
		return m.overlay(m.menu.View())
	}

	return "\n" + fullView
}

// overlay centers a modal in the window, replacing the regular view
// while the modal is up.
func (m Model) overlay(modal string) string {
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderTree() string {
	var b strings.Builder
	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	}

	if len(m.rows) == 0 {
		if b.Len() > 0 {
			b.WriteString(theme.DefaultTheme.Muted.Render("No matches."))
			return b.String()
		}
		return theme.DefaultTheme.Muted.Render("No storages yet.\nCreate one with 'nhv storage new'.")
	}

	viewportHeight := m.treeViewportHeight()
	start := m.scrollOffset
	end := start + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		r := m.rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}

		foldIndicator := ""
		if len(r.node.Children) > 0 {
			if m.collapsed[r.key] {
				foldIndicator = "▶ "
			} else {
				foldIndicator = "▼ "
			}
		}

		icon := ""
		if r.node.Icon != "" {
			icon = r.node.Icon + " "
		}

		line := fmt.Sprintf("%s%s%s%s%s", cursor, strings.Repeat("  ", r.depth), foldIndicator, icon, r.node.Name)
		if i == m.cursor {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}

	return b.String()
}

func (m Model) renderNotes() string {
	if m.currentRoute == nil {
		return theme.DefaultTheme.Muted.Render("Select an entry to list its notes.")
	}

	var b strings.Builder
	if len(m.notes) == 0 {
		b.WriteString(theme.DefaultTheme.Muted.Render("No notes here."))
		return b.String()
	}

	for _, note := range m.notes {
		title := note.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(fmt.Sprintf("▢ %s %s\n",
			title,
			theme.DefaultTheme.Muted.Render(formatRelativeTime(note.UpdatedAt))))
		if len(note.Tags) > 0 {
			b.WriteString(theme.DefaultTheme.Info.Render("   #" + strings.Join(note.Tags, " #")))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) treeViewportHeight() int {
	h := m.height - 7
	if h < 5 {
		h = 5
	}
	return h
}

// routeLabel names a route for the header.
func routeLabel(r route.Route) string {
	switch r := r.(type) {
	case route.Storage:
		return "storage " + r.StorageID
	case route.Notes:
		if r.FolderPath == "" || r.FolderPath == "/" {
			return "Notes"
		}
		return r.FolderPath
	case route.Tag:
		return "#" + r.Tag
	case route.Trash:
		return "Trash Can"
	}
	return r.Href()
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}

var treePaneStyle = lipgloss.NewStyle().
	PaddingRight(2).
	BorderStyle(lipgloss.NormalBorder()).
	BorderRight(true).
	BorderForeground(theme.DefaultTheme.Colors.Muted)
