package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/notehaven/notehaven/pkg/models"
)

// confirm asks a yes/no question on stdout and reads the answer from
// stdin. Anything but "y" declines.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var response string
	_, _ = fmt.Scanln(&response)
	return strings.ToLower(response) == "y"
}

// shortID shows the leading part of a note or storage id. The full id
// still resolves everywhere one is accepted.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func renderNotesTable(notes []*models.Note) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Title", "ID", "Folder", "Tags", "Words", "Updated"})
	for _, n := range notes {
		title := n.Title
		if title == "" {
			title = "Untitled"
		}
		t.AppendRow(table.Row{
			title,
			shortID(n.ID),
			n.FolderPath,
			strings.Join(n.Tags, ", "),
			n.WordCount,
			n.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	t.Render()
}
