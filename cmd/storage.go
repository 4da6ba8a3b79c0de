package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
)

// NewStorageCmd creates the `nhv storage` command group.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "storage",
		Short:   "Manage storages",
		Aliases: []string{"storages"},
	}
	cmd.AddCommand(newStorageNewCmd())
	cmd.AddCommand(newStorageListCmd())
	cmd.AddCommand(newStorageRenameCmd())
	cmd.AddCommand(newStorageRemoveCmd())
	return cmd
}

func newStorageNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <name>",
		Short:   "Create a new storage",
		Aliases: []string{"create"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			st, err := lib.CreateStorage(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created storage %q (%s)\n", st.Name, shortID(st.ID))
			return nil
		},
	}
}

func newStorageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List storages",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			storages, err := lib.Storages()
			if err != nil {
				return err
			}
			if len(storages) == 0 {
				fmt.Println("No storages. Create one with `nhv storage new <name>`.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "ID", "Folders", "Tags", "Created"})
			for _, st := range storages {
				t.AppendRow(table.Row{
					st.Name,
					shortID(st.ID),
					len(st.FolderMap) - 1, // root excluded
					len(st.TagMap),
					st.CreatedAt.Local().Format("2006-01-02"),
				})
			}
			t.Render()
			return nil
		},
	}
}

func newStorageRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <storage> <new-name>",
		Short: "Rename a storage",
		Args:  cobra.ExactArgs(2),
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
			if err := lib.RenameStorage(st.ID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed storage %q to %q\n", st.Name, args[1])
			return nil
		},
	}
}

func newStorageRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove <storage>",
		Short:   "Remove a storage and all its notes",
		Aliases: []string{"rm"},
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

			// Confirm unless --force is used
			if !force && !confirm(fmt.Sprintf("Remove storage %q with all its notes?", st.Name)) {
				fmt.Println("Cancelled")
				return nil
			}

			if err := lib.RemoveStorage(st.ID); err != nil {
				return err
			}
			fmt.Printf("Removed storage %q\n", st.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
