package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
	"github.com/notehaven/notehaven/internal/tui/navigator"
)

// NewTuiCmd creates the `nhv tui` command.
func NewTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive storage navigator",
		Long: `Launch an interactive Terminal User Interface for browsing storages,
folders, tags and notes. Folder and storage management lives in each
node's context menu (press m).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			config.InitConfig()
			log := config.Logger()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			// Refresh the tree when another process changes the library.
			watcher, err := lib.Watch()
			if err != nil {
				log.Warnf("library watcher unavailable: %v", err)
			} else {
				defer watcher.Close()
			}

			model := navigator.New(lib, watcher)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}
