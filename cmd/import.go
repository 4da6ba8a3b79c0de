package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
)

// NewImportCmd creates the `nhv import` command.
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <storage> <dir>",
		Short: "Import a directory of markdown files into a storage",
		Long: `Import every markdown file under a directory into a storage. The
directory layout becomes the folder tree; frontmatter titles and tags
are kept, plain files get their first heading or filename as title.

Examples:
  nhv import work ~/old-notes
  nhv import personal ./exported-vault`,
		Args: cobra.ExactArgs(2),
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

			res, err := lib.ImportDir(st.ID, args[1])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[1], err)
			}

			fmt.Printf("Imported %d notes into %q", res.Imported, st.Name)
			if res.Skipped > 0 {
				fmt.Printf(" (%d skipped)", res.Skipped)
			}
			fmt.Println()
			return nil
		},
	}
}
