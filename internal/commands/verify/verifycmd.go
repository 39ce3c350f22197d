// Package verify implements the "verify" command: detect and validate a manifest
// version change for the current pull request or push.
package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/indaco/vercheck/internal/config"
	"github.com/indaco/vercheck/internal/core"
	"github.com/indaco/vercheck/internal/event"
	"github.com/indaco/vercheck/internal/git"
	"github.com/indaco/vercheck/internal/output"
	"github.com/indaco/vercheck/internal/policy"
	"github.com/indaco/vercheck/internal/printer"
	"github.com/indaco/vercheck/internal/revision"
	"github.com/indaco/vercheck/internal/semver"
	"github.com/indaco/vercheck/internal/versionchange"
	"github.com/urfave/cli/v3"
)

// GitClient is the subset of git operations verify needs.
type GitClient interface {
	revision.CommitLookup
	versionchange.DiffProvider
}

// Function variables for testability.
var (
	newGitClientFn = func() GitClient { return git.NewClient() }
	getenvFn       = os.Getenv
	fileSystemFn   = func() core.FileSystem { return core.NewOSFileSystem() }
)

// Run returns the "verify" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Detect whether the manifest version changed and validate it",
		UsageText: "vercheck verify [--manifest name] [--format text|json|yaml|github] [--base-ref ref --head sha | --before sha --after sha]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Manifest file name inside --path",
				Value:   cfg.Manifest,
				Sources: cli.EnvVars("INPUT_MANIFEST"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, yaml or github",
				Value:   cfg.Format,
			},
			&cli.BoolFlag{
				Name:    "require-increase",
				Usage:   "Fail when the new version is not greater than the old one",
				Value:   cfg.RequireIncrease,
				Sources: cli.EnvVars("INPUT_REQUIRE_INCREASE"),
			},
			&cli.StringFlag{
				Name:  "base-ref",
				Usage: "Target branch of a pull request (overrides CI detection)",
			},
			&cli.StringFlag{
				Name:  "head",
				Usage: "Head commit of a pull request (with --base-ref)",
			},
			&cli.StringFlag{
				Name:  "before",
				Usage: "Commit before a push (overrides CI detection)",
			},
			&cli.StringFlag{
				Name:  "after",
				Usage: "Commit after a push (with --before)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runVerifyCmd(ctx, cmd, cfg)
		},
	}
}

func runVerifyCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	effective := *cfg
	if path := cmd.String("path"); path != "" {
		effective.Path = path
	}
	effective.Manifest = cmd.String("manifest")
	effective.Format = resolveFormat(cmd, cfg)
	effective.RequireIncrease = cmd.Bool("require-increase")

	if err := config.Validate(&effective); err != nil {
		return err
	}

	trigger, err := triggerFromFlags(cmd)
	if err != nil {
		return err
	}
	if trigger == nil {
		trigger, err = event.NewLoader(getenvFn, fileSystemFn()).Load(ctx)
		if err != nil {
			return err
		}
	}

	// Build the sink before running git so a misconfigured output fails fast.
	sink, err := output.NewSink(output.Format(effective.Format), cmd.Root().Writer, getenvFn("GITHUB_OUTPUT"))
	if err != nil {
		return err
	}

	// Structured documents own stdout; progress lines move to the error stream.
	if isStructured(output.Format(effective.Format)) {
		prev := printer.SetOutput(cmd.Root().ErrWriter)
		defer printer.SetOutput(prev)
	}

	client := newGitClientFn()
	detector := versionchange.NewDetector(
		revision.NewResolver(client),
		client,
		versionchange.Options{RequireIncrease: effective.RequireIncrease},
	)

	result, err := detector.Detect(ctx, trigger, effective.ManifestPath())
	if err != nil {
		return err
	}

	if result.Changed && len(effective.Rules) > 0 {
		if err := checkPolicy(effective.Rules, result, targetBranch(trigger)); err != nil {
			return err
		}
	}

	return output.Report(sink, result)
}

func checkPolicy(rules []policy.Rule, result versionchange.Result, branch string) error {
	old, err := semver.ParseVersion(result.OldVersion)
	if err != nil {
		return err
	}
	next, err := semver.ParseVersion(result.NewVersion)
	if err != nil {
		return err
	}

	return policy.NewChecker(rules).Check(policy.Change{
		Old:    old,
		New:    next,
		Bump:   semver.Classify(old, next),
		Branch: branch,
	})
}

// targetBranch is the branch a change lands on: the base of a pull request, or the
// pushed branch as reported by the CI provider.
func targetBranch(trigger event.TriggerContext) string {
	if proposal, ok := trigger.(event.ChangeProposal); ok {
		return proposal.BaseRef
	}
	if ref := getenvFn("GITHUB_REF_NAME"); ref != "" {
		return ref
	}
	return getenvFn("CI_COMMIT_BRANCH")
}

func isStructured(f output.Format) bool {
	return f == output.FormatJSON || f == output.FormatYAML
}

// resolveFormat switches the default text output to GitHub step outputs when running
// inside GitHub Actions and no format was chosen explicitly.
func resolveFormat(cmd *cli.Command, cfg *config.Config) string {
	format := cmd.String("format")
	if !cmd.IsSet("format") && format == config.DefaultFormat && getenvFn("GITHUB_OUTPUT") != "" {
		return string(output.FormatGitHub)
	}
	return format
}

// triggerFromFlags builds a trigger from explicit flags, or returns nil when none are set.
func triggerFromFlags(cmd *cli.Command) (event.TriggerContext, error) {
	baseRef, head := cmd.String("base-ref"), cmd.String("head")
	before, after := cmd.String("before"), cmd.String("after")

	proposal := baseRef != "" || head != ""
	push := before != "" || after != ""

	switch {
	case proposal && push:
		return nil, fmt.Errorf("--base-ref/--head and --before/--after are mutually exclusive")
	case proposal:
		if baseRef == "" || head == "" {
			return nil, fmt.Errorf("--base-ref and --head must be used together")
		}
		return event.ChangeProposal{BaseRef: baseRef, HeadRevision: head}, nil
	case push:
		if before == "" || after == "" {
			return nil, fmt.Errorf("--before and --after must be used together")
		}
		return event.DirectPush{BeforeRevision: before, AfterRevision: after}, nil
	default:
		return nil, nil
	}
}
