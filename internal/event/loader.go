package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/vercheck/internal/core"
	"github.com/tidwall/gjson"
)

// Getenv looks up an environment variable; os.Getenv in production.
type Getenv func(key string) string

// ErrNoCIEnvironment is returned by Load when neither GitHub Actions nor GitLab CI
// variables are present.
var ErrNoCIEnvironment = errors.New("no supported CI environment detected (GitHub Actions or GitLab CI)")

// Loader builds a TriggerContext from CI environment variables.
type Loader struct {
	getenv Getenv
	fs     core.FileSystem
}

// NewLoader creates a Loader. The filesystem is used to read the GitHub event payload.
func NewLoader(getenv Getenv, fs core.FileSystem) *Loader {
	return &Loader{getenv: getenv, fs: fs}
}

// Load detects the CI provider and returns its trigger context.
func (l *Loader) Load(ctx context.Context) (TriggerContext, error) {
	switch {
	case l.getenv("GITHUB_EVENT_NAME") != "":
		return l.fromGitHub(ctx)
	case l.getenv("GITLAB_CI") == "true":
		return l.fromGitLab()
	default:
		return nil, ErrNoCIEnvironment
	}
}

func (l *Loader) fromGitHub(ctx context.Context) (TriggerContext, error) {
	name := l.getenv("GITHUB_EVENT_NAME")

	switch name {
	case "pull_request", "pull_request_target", "push":
	default:
		return nil, &UnsupportedContextError{Event: name}
	}

	path := l.getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return nil, &MissingFieldError{Event: name, Field: "GITHUB_EVENT_PATH"}
	}

	payload, err := l.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload %q: %w", path, err)
	}
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("event payload %q is not valid JSON", path)
	}

	if name == "push" {
		before, err := requireField(payload, name, "before")
		if err != nil {
			return nil, err
		}
		after, err := requireField(payload, name, "after")
		if err != nil {
			return nil, err
		}
		return DirectPush{BeforeRevision: before, AfterRevision: after}, nil
	}

	baseRef, err := requireField(payload, name, "pull_request.base.ref")
	if err != nil {
		return nil, err
	}
	head, err := requireField(payload, name, "pull_request.head.sha")
	if err != nil {
		return nil, err
	}
	return ChangeProposal{BaseRef: baseRef, HeadRevision: head}, nil
}

func requireField(payload []byte, event, field string) (string, error) {
	value := gjson.GetBytes(payload, field)
	if !value.Exists() || value.String() == "" {
		return "", &MissingFieldError{Event: event, Field: field}
	}
	return value.String(), nil
}

func (l *Loader) fromGitLab() (TriggerContext, error) {
	source := l.getenv("CI_PIPELINE_SOURCE")

	switch source {
	case "merge_request_event":
		baseRef, err := l.requireEnv(source, "CI_MERGE_REQUEST_TARGET_BRANCH_NAME")
		if err != nil {
			return nil, err
		}
		head, err := l.requireEnv(source, "CI_COMMIT_SHA")
		if err != nil {
			return nil, err
		}
		return ChangeProposal{BaseRef: baseRef, HeadRevision: head}, nil
	case "push":
		before, err := l.requireEnv(source, "CI_COMMIT_BEFORE_SHA")
		if err != nil {
			return nil, err
		}
		after, err := l.requireEnv(source, "CI_COMMIT_SHA")
		if err != nil {
			return nil, err
		}
		return DirectPush{BeforeRevision: before, AfterRevision: after}, nil
	default:
		return nil, &UnsupportedContextError{Event: source}
	}
}

func (l *Loader) requireEnv(event, key string) (string, error) {
	value := l.getenv(key)
	if value == "" {
		return "", &MissingFieldError{Event: event, Field: key}
	}
	return value, nil
}
