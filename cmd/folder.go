package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
	"github.com/notehaven/notehaven/pkg/navtree"
)

// NewFolderCmd creates the `nhv folder` command group.
func NewFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folder",
		Short:   "Manage folders inside a storage",
		Aliases: []string{"folders"},
	}
	cmd.AddCommand(newFolderNewCmd())
	cmd.AddCommand(newFolderListCmd())
	cmd.AddCommand(newFolderRemoveCmd())
	return cmd
}

func newFolderNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "new <storage> <path>",
		Short:   "Create a folder, including missing parents",
		Aliases: []string{"create"},
		Args:    cobra.ExactArgs(2),
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
			if err := lib.CreateFolder(st.ID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Created folder %s in %q\n", args[1], st.Name)
			return nil
		},
	}
}

func newFolderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list <storage>",
		Short:   "Show the folder tree of a storage",
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

			fmt.Printf("%s\n", st.Name)
			printFolderTree(navtree.BuildPathTree(st.FolderPaths()), 1)
			return nil
		},
	}
}

func printFolderTree(t *navtree.PathTree, depth int) {
	for _, name := range t.ChildNames() {
		fmt.Printf("%s%s/\n", strings.Repeat("  ", depth), name)
		printFolderTree(t.Child(name), depth+1)
	}
}

func newFolderRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove <storage> <path>",
		Short:   "Remove a folder and its subfolders",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(2),
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

			if !force && !confirm(fmt.Sprintf("Remove folder %s? Its notes move to the trash.", args[1])) {
				fmt.Println("Cancelled")
				return nil
			}

			if err := lib.RemoveFolder(st.ID, args[1]); err != nil {
				return err
			}
			fmt.Printf("Removed folder %s from %q\n", args[1], st.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
