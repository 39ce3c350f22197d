package printer

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	fn()
	return buf.String()
}

func TestRenderFunctions_ContainText(t *testing.T) {
	SetNoColor(true)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"Faint", Faint},
		{"Bold", Bold},
		{"Success", Success},
		{"Error", Error},
		{"Warning", Warning},
		{"Info", Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn("hello"); got != "hello" {
				t.Errorf("%s(%q) = %q with colors disabled", tt.name, "hello", got)
			}
		})
	}
}

func TestPrintFunctions_WriteLine(t *testing.T) {
	SetNoColor(true)

	tests := []struct {
		name string
		fn   func(string)
	}{
		{"PrintFaint", PrintFaint},
		{"PrintBold", PrintBold},
		{"PrintSuccess", PrintSuccess},
		{"PrintError", PrintError},
		{"PrintWarning", PrintWarning},
		{"PrintInfo", PrintInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captureOutput(t, func() { tt.fn("message") })
			if got != "message\n" {
				t.Errorf("%s wrote %q, want %q", tt.name, got, "message\n")
			}
		})
	}
}

func TestInfof(t *testing.T) {
	SetNoColor(true)
	got := captureOutput(t, func() { Infof("Base commit: %s", "abc") })
	if strings.TrimSpace(got) != "Base commit: abc" {
		t.Errorf("Infof wrote %q", got)
	}
}

func TestShouldDisableColor(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		if !ShouldDisableColor(true) {
			t.Error("expected colors disabled when flag is set")
		}
	})

	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		if !ShouldDisableColor(false) {
			t.Error("expected colors disabled when NO_COLOR is set")
		}
	})

	t.Run("CI keeps colors", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		t.Setenv("CLICOLOR", "")
		t.Setenv("GITHUB_ACTIONS", "true")
		if ShouldDisableColor(false) {
			t.Error("expected colors enabled on CI")
		}
	})
}

func TestIsCI(t *testing.T) {
	for _, env := range ciEnvs {
		t.Setenv(env, "")
	}
	if IsCI() {
		t.Fatal("IsCI() = true with no CI variables set")
	}

	t.Setenv("GITLAB_CI", "true")
	if !IsCI() {
		t.Error("IsCI() = false with GITLAB_CI set")
	}
}
