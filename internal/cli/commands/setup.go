// Package commands implements the hqlint subcommands.
package commands

import (
	"log/slog"

	"github.com/hqltools/hqlint/internal/cli/output"
	"github.com/hqltools/hqlint/internal/config"
	"github.com/spf13/cobra"
)

// CommandContext holds the dependencies a command resolves from its
// invocation context. Running a subcommand outside the root (as tests
// do) falls back to the default configuration and a discard logger.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext resolves configuration, logger and renderer for a
// command invocation.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	cfg := config.GetConfig(ctx)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(ctx),
		Renderer: r,
	}
}
