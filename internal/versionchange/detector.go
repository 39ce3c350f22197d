package versionchange

import (
	"context"
	"fmt"

	"github.com/indaco/vercheck/internal/event"
	"github.com/indaco/vercheck/internal/revision"
	"github.com/indaco/vercheck/internal/semver"
)

// DiffProvider returns the word-level diff of one file between two revisions.
type DiffProvider interface {
	WordDiff(ctx context.Context, base, head, path string) (string, error)
}

// RevisionResolver maps a trigger context to the revisions to compare.
type RevisionResolver interface {
	Resolve(ctx context.Context, trigger event.TriggerContext) (revision.Pair, error)
}

// NotIncreasedError is returned when RequireIncrease is set and the new version
// does not have higher precedence than the old one.
type NotIncreasedError struct {
	Old string
	New string
}

func (e *NotIncreasedError) Error() string {
	return fmt.Sprintf("The new version %q must be greater than the old version %q.", e.New, e.Old)
}

// Options tunes Detector behavior.
type Options struct {
	RequireIncrease bool
}

// Detector runs resolve, diff and extract in sequence.
type Detector struct {
	resolver RevisionResolver
	differ   DiffProvider
	opts     Options
}

// NewDetector creates a Detector.
func NewDetector(resolver RevisionResolver, differ DiffProvider, opts Options) *Detector {
	return &Detector{resolver: resolver, differ: differ, opts: opts}
}

// Detect reports whether the "version" field of manifestPath changed for trigger.
// Errors from each step are returned unchanged.
func (d *Detector) Detect(ctx context.Context, trigger event.TriggerContext, manifestPath string) (Result, error) {
	pair, err := d.resolver.Resolve(ctx, trigger)
	if err != nil {
		return Result{}, err
	}

	diff, err := d.differ.WordDiff(ctx, pair.Base, pair.Head, manifestPath)
	if err != nil {
		return Result{}, err
	}

	result, err := Extract(diff)
	if err != nil {
		return Result{}, err
	}

	if result.Changed && d.opts.RequireIncrease {
		if err := checkIncreased(result); err != nil {
			return Result{}, err
		}
	}

	return result, nil
}

func checkIncreased(r Result) error {
	old, err := semver.ParseVersion(r.OldVersion)
	if err != nil {
		return err
	}
	next, err := semver.ParseVersion(r.NewVersion)
	if err != nil {
		return err
	}
	if next.Compare(old) <= 0 {
		return &NotIncreasedError{Old: r.OldVersion, New: r.NewVersion}
	}
	return nil
}
