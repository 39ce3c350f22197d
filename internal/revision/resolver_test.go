package revision

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/vercheck/internal/event"
	"github.com/indaco/vercheck/internal/git"
	"github.com/indaco/vercheck/internal/printer"
)

type unknownTrigger struct{ event.DirectPush }

func (unknownTrigger) Kind() event.Kind { return "tag" }

func silencePrinter(t *testing.T) *bytes.Buffer {
	t.Helper()
	printer.SetNoColor(true)
	var buf bytes.Buffer
	prev := printer.SetOutput(&buf)
	t.Cleanup(func() { printer.SetOutput(prev) })
	return &buf
}

func TestResolver_ChangeProposal(t *testing.T) {
	logs := silencePrinter(t)

	var gotRef string
	commits := &git.MockClient{
		LatestCommitFn: func(ctx context.Context, ref string) (string, error) {
			gotRef = ref
			return "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", nil
		},
	}

	pair, err := NewResolver(commits).Resolve(context.Background(), event.ChangeProposal{
		BaseRef:      "main",
		HeadRevision: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotRef != "main" {
		t.Errorf("looked up ref %q, want %q", gotRef, "main")
	}
	want := Pair{Base: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Head: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}
	if pair != want {
		t.Errorf("Resolve() = %+v, want %+v", pair, want)
	}

	for _, line := range []string{"Base branch: main", "Base commit: aaaa", "Head commit: bbbb"} {
		if !strings.Contains(logs.String(), line) {
			t.Errorf("expected log to contain %q, got:\n%s", line, logs.String())
		}
	}
}

func TestResolver_ChangeProposal_BaseIndependentOfHead(t *testing.T) {
	silencePrinter(t)

	commits := &git.MockClient{
		LatestCommitFn: func(ctx context.Context, ref string) (string, error) {
			return "tip-of-" + ref, nil
		},
	}
	r := NewResolver(commits)

	for _, head := range []string{"h1", "h2", "h3"} {
		pair, err := r.Resolve(context.Background(), event.ChangeProposal{BaseRef: "develop", HeadRevision: head})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pair.Base != "tip-of-develop" {
			t.Errorf("head %s: Base = %q, want %q", head, pair.Base, "tip-of-develop")
		}
		if pair.Head != head {
			t.Errorf("Head = %q, want %q", pair.Head, head)
		}
	}
}

func TestResolver_ChangeProposal_LookupError(t *testing.T) {
	silencePrinter(t)

	lookupErr := &git.CommandError{Args: []string{"log"}, Stderr: "fatal: bad revision"}
	commits := &git.MockClient{
		LatestCommitFn: func(ctx context.Context, ref string) (string, error) {
			return "", lookupErr
		},
	}

	_, err := NewResolver(commits).Resolve(context.Background(), event.ChangeProposal{BaseRef: "main", HeadRevision: "h"})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error unchanged, got %v", err)
	}
}

func TestResolver_DirectPush(t *testing.T) {
	silencePrinter(t)

	tests := []struct {
		name   string
		before string
		after  string
		want   Pair
	}{
		{
			name:   "regular push",
			before: "cccccccccccccccccccccccccccccccccccccccc",
			after:  "dddddddddddddddddddddddddddddddddddddddd",
			want:   Pair{Base: "cccccccccccccccccccccccccccccccccccccccc", Head: "dddddddddddddddddddddddddddddddddddddddd"},
		},
		{
			name:   "first push of a branch",
			before: git.ZeroSHA,
			after:  "dddddddddddddddddddddddddddddddddddddddd",
			want:   Pair{Base: "HEAD^", Head: "dddddddddddddddddddddddddddddddddddddddd"},
		},
	}

	commits := &git.MockClient{
		LatestCommitFn: func(ctx context.Context, ref string) (string, error) {
			t.Fatal("push contexts must not look up commits")
			return "", nil
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := NewResolver(commits).Resolve(context.Background(), event.DirectPush{
				BeforeRevision: tt.before,
				AfterRevision:  tt.after,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pair != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", pair, tt.want)
			}
		})
	}
}

func TestResolver_EmptyRevision(t *testing.T) {
	silencePrinter(t)

	_, err := NewResolver(&git.MockClient{}).Resolve(context.Background(), event.DirectPush{BeforeRevision: "abc"})
	if err == nil {
		t.Fatal("expected error for empty head revision")
	}
}

func TestResolver_UnsupportedTrigger(t *testing.T) {
	silencePrinter(t)

	_, err := NewResolver(&git.MockClient{}).Resolve(context.Background(), unknownTrigger{})
	var unsupported *event.UnsupportedContextError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *event.UnsupportedContextError, got %v", err)
	}
}
