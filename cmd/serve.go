package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
	"github.com/notehaven/notehaven/internal/web"
)

// NewServeCmd creates the `nhv serve` command.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only web view",
		Long: `Serve a browser view of every storage: the navigation tree, note
lists per folder, tag and trash, full-text search and rendered notes.
The web view never modifies the library.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			if addr == "" {
				addr = config.ListenAddr()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return web.New(lib, addr, config.Logger()).Serve(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:9115)")

	return cmd
}
