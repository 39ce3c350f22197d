// Package initialize implements the "init" command, which scaffolds .vercheck.yaml.
package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/vercheck/internal/config"
	"github.com/indaco/vercheck/internal/core"
	"github.com/indaco/vercheck/internal/printer"
	"github.com/urfave/cli/v3"
)

// Function variables for testability.
var (
	fileSystemFn = func() core.FileSystem { return core.NewOSFileSystem() }
	saveFn       = func(cfg *config.Config, file string) error {
		return config.NewConfigSaver(commentedMarshaler{}, nil, nil).SaveTo(cfg, file)
	}
)

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a .vercheck.yaml configuration file",
		UsageText: "vercheck init [--manifest name] [--dir path] [--format text|json|yaml|github] [--require-increase] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Manifest file name",
				Value: config.DefaultManifest,
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Directory containing the manifest",
				Value: ".",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Default output format",
				Value: config.DefaultFormat,
			},
			&cli.BoolFlag{
				Name:  "require-increase",
				Usage: "Require every version change to be an increase",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(ctx context.Context, cmd *cli.Command) error {
	file := config.DefaultConfigFile

	if !cmd.Bool("force") {
		if _, err := fileSystemFn().Stat(ctx, file); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", file)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", file, err)
		}
	}

	cfg := &config.Config{
		Path:            cmd.String("dir"),
		Manifest:        cmd.String("manifest"),
		Format:          cmd.String("format"),
		RequireIncrease: cmd.Bool("require-increase"),
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if err := saveFn(cfg, file); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s", file))
	printer.PrintFaint(fmt.Sprintf("Watching %s for version changes", cfg.ManifestPath()))
	return nil
}
