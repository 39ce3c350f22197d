// Package alerts implements the "alerts" command, which decodes a Dependabot alerts
// payload and lists it.
package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/indaco/vercheck/internal/alerts"
	"github.com/indaco/vercheck/internal/printer"
	"github.com/urfave/cli/v3"
)

// openFileFn is replaced in tests.
var openFileFn = func(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Run returns the "alerts" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "alerts",
		Usage:     "List Dependabot alerts from an API response",
		UsageText: "vercheck alerts [--file path|-] [--state open|dismissed|fixed|auto_dismissed] [--json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Alerts JSON file, or - for stdin",
				Value: "-",
			},
			&cli.StringFlag{
				Name:  "state",
				Usage: "Only list alerts in this state",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the decoded alerts as JSON",
			},
		},
		Action: runAlertsCmd,
	}
}

func runAlertsCmd(ctx context.Context, cmd *cli.Command) error {
	list, err := readAlerts(cmd)
	if err != nil {
		return err
	}
	list = alerts.FilterByState(list, cmd.String("state"))

	if cmd.Bool("json") {
		enc := json.NewEncoder(cmd.Root().Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	if len(list) == 0 {
		printer.PrintFaint("No alerts.")
		return nil
	}

	for _, a := range list {
		printer.PrintBold(fmt.Sprintf("#%d %s", a.Number, severityLabel(a)))
		fmt.Fprintf(printer.Output(), "  %s\n", a.SecurityAdvisory.Summary)
		if a.HTMLURL != "" {
			printer.PrintFaint("  " + a.HTMLURL)
		}
	}
	return nil
}

func readAlerts(cmd *cli.Command) ([]alerts.DependabotAlert, error) {
	path := cmd.String("file")
	if path == "-" {
		return alerts.Decode(cmd.Root().Reader)
	}

	f, err := openFileFn(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open alerts file: %w", err)
	}
	defer f.Close()

	return alerts.Decode(f)
}

// severityLabel renders the advisory severity, falling back to the vulnerability's.
func severityLabel(a alerts.DependabotAlert) string {
	severity := a.SecurityAdvisory.Severity
	if severity == "" {
		severity = a.SecurityVulnerability.Severity
	}
	if severity == "" {
		return printer.Faint("[unknown]")
	}

	label := "[" + strings.ToLower(severity) + "]"
	switch strings.ToLower(severity) {
	case "critical", "high":
		return printer.Error(label)
	case "medium":
		return printer.Warning(label)
	default:
		return printer.Info(label)
	}
}
