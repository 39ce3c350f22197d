package main

import (
	"context"
	"os"

	"github.com/indaco/vercheck/internal/cli"
	"github.com/indaco/vercheck/internal/config"
	"github.com/indaco/vercheck/internal/output"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command with args.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}

	return cli.New(cfg).Run(context.Background(), args)
}

// reportError prints err once. On GitHub Actions it becomes an error annotation on stdout.
func reportError(err error) {
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		output.ReportFailure(os.Stdout, err.Error(), true)
		return
	}
	output.ReportFailure(os.Stderr, err.Error(), false)
}
