package show

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/vercheck/internal/config"
	"github.com/indaco/vercheck/internal/core"
	"github.com/indaco/vercheck/internal/parser"
	"github.com/indaco/vercheck/internal/printer"
	"github.com/indaco/vercheck/internal/semver"
	"github.com/urfave/cli/v3"
)

// fileSystemFn is replaced in tests.
var fileSystemFn = func() core.FileSystem { return core.NewOSFileSystem() }

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Display the version declared in the manifest",
		UsageText: "vercheck show [--manifest name] [--field key] [--strict]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Manifest file name inside --path",
				Value:   cfg.Manifest,
			},
			&cli.StringFlag{
				Name:        "field",
				Usage:       "Dot-separated key holding the version (e.g. tool.poetry.version)",
				DefaultText: parser.DefaultField,
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Fail when the declared version is not valid SemVer",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, cfg)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	dir := cfg.Path
	if p := cmd.String("path"); p != "" {
		dir = p
	}
	manifest := filepath.Join(dir, cmd.String("manifest"))

	reader := parser.NewReader(fileSystemFn())
	result, err := reader.Read(ctx, parser.FileConfig{
		Path:  manifest,
		Field: cmd.String("field"),
	})
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}

	if !semver.Valid(result.Version) {
		if cmd.Bool("strict") {
			return fmt.Errorf("version %q in %s is not valid SemVer", result.Version, result.Path)
		}
		printer.PrintWarning(fmt.Sprintf("%s (not valid SemVer)", result.Version))
		return nil
	}

	printer.PrintBold(result.Version)
	return nil
}
