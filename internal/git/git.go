// Package git runs the git commands vercheck needs: a commit lookup and a word-level diff.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const (
	// ZeroSHA is the revision id push events carry as "before" when a branch is pushed
	// for the first time.
	ZeroSHA = "0000000000000000000000000000000000000000"

	// ParentOfHead is the symbolic reference for the commit before HEAD.
	ParentOfHead = "HEAD^"
)

// CommandError is returned when a git command exits unsuccessfully.
// Stderr holds the command's error stream verbatim.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("Command \"git %s\" has been failed with error: %s", strings.Join(e.Args, " "), e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Client runs git in the current working directory.
type Client struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewClient creates a Client backed by exec.CommandContext.
func NewClient() *Client {
	return &Client{execCommand: exec.CommandContext}
}

// run executes git with args and returns its stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := c.execCommand(ctx, "git", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

// LatestCommit returns the id of the most recent commit reachable from ref.
func (c *Client) LatestCommit(ctx context.Context, ref string) (string, error) {
	out, err := c.run(ctx, "log", "-n", "1", "--pretty=format:%H", ref)
	if err != nil {
		return "", err
	}

	sha := strings.TrimSpace(out)
	if sha == "" {
		return "", fmt.Errorf("no commit found for %q", ref)
	}
	return sha, nil
}

// WordDiff returns the word-level diff of path between base and head.
func (c *Client) WordDiff(ctx context.Context, base, head, path string) (string, error) {
	return c.run(ctx, "diff", "--word-diff", base, head, "--", path)
}
