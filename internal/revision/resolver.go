// Package revision resolves a trigger context into the pair of revisions to diff.
package revision

import (
	"context"
	"fmt"

	"github.com/indaco/vercheck/internal/event"
	"github.com/indaco/vercheck/internal/git"
	"github.com/indaco/vercheck/internal/printer"
)

// Pair holds the base and head revisions to compare.
type Pair struct {
	Base string
	Head string
}

// CommitLookup finds the most recent commit reachable from a ref.
type CommitLookup interface {
	LatestCommit(ctx context.Context, ref string) (string, error)
}

// Resolver turns trigger contexts into revision pairs.
type Resolver struct {
	commits CommitLookup
}

// NewResolver creates a Resolver that uses commits for change-proposal lookups.
func NewResolver(commits CommitLookup) *Resolver {
	return &Resolver{commits: commits}
}

// Resolve computes the revision pair for trigger.
func (r *Resolver) Resolve(ctx context.Context, trigger event.TriggerContext) (Pair, error) {
	var pair Pair

	switch t := trigger.(type) {
	case event.ChangeProposal:
		printer.Infof("Base branch: %s", t.BaseRef)

		base, err := r.commits.LatestCommit(ctx, t.BaseRef)
		if err != nil {
			return Pair{}, err
		}
		pair = Pair{Base: base, Head: t.HeadRevision}
	case event.DirectPush:
		pair = Pair{Base: t.BeforeRevision, Head: t.AfterRevision}
		if pair.Base == git.ZeroSHA {
			pair.Base = git.ParentOfHead
		}
	default:
		return Pair{}, &event.UnsupportedContextError{Event: fmt.Sprintf("%T", trigger)}
	}

	printer.Infof("Base commit: %s", pair.Base)
	printer.Infof("Head commit: %s", pair.Head)

	if pair.Base == "" || pair.Head == "" {
		return Pair{}, fmt.Errorf("could not resolve revisions: base %q, head %q", pair.Base, pair.Head)
	}

	return pair, nil
}
