package alerts

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

const alertsPayload = `
[
  {
    "number": 42,
    "state": "open",
    "security_advisory": {
      "summary": "Prototype pollution in lodash",
      "description": "Versions of lodash before 4.17.21 are vulnerable.",
      "severity": "high"
    },
    "security_vulnerability": {"severity": "high"},
    "url": "https://api.github.com/repos/octo/app/dependabot/alerts/42",
    "html_url": "https://github.com/octo/app/security/dependabot/42",
    "created_at": "2024-03-01T10:00:00Z",
    "updated_at": "2024-03-02T11:30:00Z"
  },
  {
    "number": 7,
    "state": "dismissed",
    "security_advisory": {"summary": "ReDoS in semver", "severity": "medium"},
    "security_vulnerability": {"severity": "medium"},
    "created_at": "2023-12-24T08:00:00Z",
    "updated_at": "2023-12-25T08:00:00Z"
  }
]`

func TestDecode_Array(t *testing.T) {
	list, err := Decode(strings.NewReader(alertsPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(list))
	}

	a := list[0]
	if a.Number != 42 || a.State != "open" {
		t.Errorf("got number %d state %q", a.Number, a.State)
	}
	if a.SecurityAdvisory.Summary != "Prototype pollution in lodash" || a.SecurityAdvisory.Severity != "high" {
		t.Errorf("unexpected advisory: %+v", a.SecurityAdvisory)
	}
	if a.SecurityVulnerability.Severity != "high" {
		t.Errorf("unexpected vulnerability: %+v", a.SecurityVulnerability)
	}
	if a.HTMLURL != "https://github.com/octo/app/security/dependabot/42" {
		t.Errorf("HTMLURL = %q", a.HTMLURL)
	}
	wantCreated := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	if !a.CreatedAt.Equal(wantCreated) {
		t.Errorf("CreatedAt = %v, want %v", a.CreatedAt, wantCreated)
	}
}

func TestDecode_SingleObject(t *testing.T) {
	list, err := Decode(strings.NewReader(`  {"number": 1, "state": "fixed"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].Number != 1 || list[0].State != "fixed" {
		t.Errorf("unexpected result: %+v", list)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"scalar", `"open"`},
		{"broken array", `[{"number": 1`},
		{"bad timestamp", `{"created_at": "yesterday"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecode_EmptyIsEOF(t *testing.T) {
	_, err := Decode(strings.NewReader("   \n"))
	if !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFilterByState(t *testing.T) {
	list, err := Decode(strings.NewReader(alertsPayload))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		state string
		want  []int
	}{
		{"", []int{42, 7}},
		{"open", []int{42}},
		{"dismissed", []int{7}},
		{"fixed", nil},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			got := FilterByState(list, tt.state)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d alerts, want %d", len(got), len(tt.want))
			}
			for i, n := range tt.want {
				if got[i].Number != n {
					t.Errorf("alert %d: number %d, want %d", i, got[i].Number, n)
				}
			}
		})
	}
}
