package cli

import (
	"context"
	"fmt"

	"github.com/indaco/vercheck/internal/commands/alerts"
	"github.com/indaco/vercheck/internal/commands/initialize"
	"github.com/indaco/vercheck/internal/commands/show"
	"github.com/indaco/vercheck/internal/commands/verify"
	"github.com/indaco/vercheck/internal/config"
	"github.com/indaco/vercheck/internal/printer"
	"github.com/indaco/vercheck/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the vercheck cli.
func New(cfg *config.Config) *urfavecli.Command {
	var noColorFlag bool

	return &urfavecli.Command{
		Name:                  "vercheck",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Detect and validate manifest version changes in CI",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "path",
				Aliases:     []string{"p"},
				Usage:       "Directory containing the manifest",
				Value:       cfg.Path,
				DefaultText: ".",
				Sources:     urfavecli.EnvVars("VERCHECK_PATH", "INPUT_PATH"),
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(printer.ShouldDisableColor(noColorFlag))
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			verify.Run(cfg),
			show.Run(cfg),
			alerts.Run(),
			initialize.Run(),
		},
	}
}
