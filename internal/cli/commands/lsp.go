package commands

import (
	"context"
	"os"

	"github.com/hqltools/hqlint/internal/config"
	"github.com/hqltools/hqlint/internal/lsp"
	"github.com/spf13/cobra"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. Diagnostics
are published on open and on every change; completion and formatting
are served from the resolved configuration, which reloads when the
config file changes on disk or the client signals
workspace/didChangeConfiguration.`,
		Example: `  # Start the server (usually launched by an editor)
  hqlint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}
	return cmd
}

func runLSP(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	logger := config.GetLogger(ctx)
	flags := cmd.Root().PersistentFlags()

	srv := lsp.NewServer(os.Stdin, os.Stdout, cfg, logger)
	srv.OnConfigReload(func() (*config.Config, error) {
		return config.Load(config.ConfigFileUsed(), flags)
	})

	// Push config file edits to the server without waiting for a
	// client notification.
	if path := config.ConfigFileUsed(); path != "" {
		watcher := config.NewWatcher(path, flags, logger)
		updates := watcher.Subscribe()
		defer watcher.Unsubscribe(updates)

		wctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := watcher.Run(wctx); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
		go func() {
			for snapshot := range updates {
				srv.SetConfig(snapshot)
			}
		}()
	}

	return srv.Run()
}
