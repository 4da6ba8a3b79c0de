package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd"
	"github.com/notehaven/notehaven/cmd/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nhv",
		Short: "A storage-based note-taking system",
		Long: `Notehaven keeps markdown notes in storages with virtual folders and
tags, backed by a sqlite index. The files stay plain markdown with
frontmatter; the index can always be rebuilt from them.`,
		SilenceUsage: true,
	}

	config.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewStorageCmd())
	rootCmd.AddCommand(cmd.NewFolderCmd())
	rootCmd.AddCommand(cmd.NewNoteCmd())
	rootCmd.AddCommand(cmd.NewTagCmd())
	rootCmd.AddCommand(cmd.NewImportCmd())
	rootCmd.AddCommand(cmd.NewDoctorCmd())
	rootCmd.AddCommand(cmd.NewTuiCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
