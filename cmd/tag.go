package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
)

// NewTagCmd creates the `nhv tag` command group.
func NewTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Short:   "Inspect tags",
		Aliases: []string{"tags"},
	}
	cmd.AddCommand(newTagListCmd())
	return cmd
}

func newTagListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <storage>",
		Short:   "List tags of a storage with note counts",
		Aliases: []string{"ls"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			st, err := lib.ResolveStorage(args[0])
			if err != nil {
				return err
			}

			names := st.TagNames()
			if len(names) == 0 {
				fmt.Println("No tags.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Tag", "Notes"})
			for _, name := range names {
				notes, err := lib.NotesByTag(st.ID, name)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{name, len(notes)})
			}
			t.Render()
			return nil
		},
	}
}
