package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

var fakeGitCommands = map[string]string{}

func fakeExecCommand(ctx context.Context, command string, args ...string) *exec.Cmd {
	cmdStr := command + " " + strings.Join(args, " ")
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess", "--", cmdStr) //nolint:gosec // G702: standard test re-exec pattern

	cmd.Env = append(os.Environ(),
		"GO_TEST_HELPER_PROCESS=1",
		"MOCK_KEY="+cmdStr,
		"MOCK_VAL="+fakeGitCommands[cmdStr],
	)

	return cmd
}

// Simulated process that prints predefined output.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_TEST_HELPER_PROCESS") != "1" {
		return
	}

	val := os.Getenv("MOCK_VAL")

	if msg, ok := strings.CutPrefix(val, "ERROR:"); ok {
		_, _ = os.Stderr.WriteString(msg)
		os.Exit(128)
	}

	_, _ = os.Stdout.WriteString(val)
	os.Exit(0)
}

func newFakeClient(commands map[string]string) *Client {
	fakeGitCommands = commands
	return &Client{execCommand: fakeExecCommand}
}

func TestClient_LatestCommit(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		commands  map[string]string
		want      string
		expectErr bool
	}{
		{
			name: "returns trimmed sha",
			ref:  "main",
			commands: map[string]string{
				"git log -n 1 --pretty=format:%H main": "3f1c2d4e5f60718293a4b5c6d7e8f90123456789\n",
			},
			want: "3f1c2d4e5f60718293a4b5c6d7e8f90123456789",
		},
		{
			name: "remote ref",
			ref:  "origin/release",
			commands: map[string]string{
				"git log -n 1 --pretty=format:%H origin/release": "abc123",
			},
			want: "abc123",
		},
		{
			name: "empty output",
			ref:  "main",
			commands: map[string]string{
				"git log -n 1 --pretty=format:%H main": "",
			},
			expectErr: true,
		},
		{
			name: "unknown revision",
			ref:  "missing",
			commands: map[string]string{
				"git log -n 1 --pretty=format:%H missing": "ERROR:fatal: ambiguous argument 'missing'",
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newFakeClient(tt.commands)
			got, err := c.LatestCommit(context.Background(), tt.ref)
			if (err != nil) != tt.expectErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestCommit(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestClient_WordDiff(t *testing.T) {
	diff := "diff --git a/package.json b/package.json\n@@ -1,4 +1,4 @@\n  \"version\": [-\"1.2.3\",-]{+\"1.3.0\",+}\n"
	c := newFakeClient(map[string]string{
		"git diff --word-diff base head -- pkg/package.json": diff,
	})

	got, err := c.WordDiff(context.Background(), "base", "head", "pkg/package.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != diff {
		t.Errorf("WordDiff() = %q, want %q", got, diff)
	}
}

func TestClient_WordDiff_CommandError(t *testing.T) {
	stderr := "fatal: bad revision 'base'\n"
	c := newFakeClient(map[string]string{
		"git diff --word-diff base head -- package.json": "ERROR:" + stderr,
	})

	_, err := c.WordDiff(context.Background(), "base", "head", "package.json")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %T", err)
	}
	if cmdErr.Stderr != stderr {
		t.Errorf("Stderr = %q, want %q", cmdErr.Stderr, stderr)
	}
	if !strings.Contains(err.Error(), "git diff --word-diff base head -- package.json") {
		t.Errorf("error should name the command, got %q", err.Error())
	}
	if !strings.HasSuffix(err.Error(), stderr) {
		t.Errorf("error should end with stderr verbatim, got %q", err.Error())
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("expected wrapped *exec.ExitError, got %v", cmdErr.Err)
	}
}

func TestNewClient(t *testing.T) {
	if c := NewClient(); c.execCommand == nil {
		t.Fatal("NewClient should set execCommand")
	}
}
