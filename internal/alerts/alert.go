// Package alerts models Dependabot alert payloads as returned by the GitHub REST API
// (GET /repos/{owner}/{repo}/dependabot/alerts) for downstream notifications.
package alerts

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// DependabotAlert mirrors one alert of the API response.
type DependabotAlert struct {
	Number                int                   `json:"number"`
	State                 string                `json:"state"`
	SecurityAdvisory      SecurityAdvisory      `json:"security_advisory"`
	SecurityVulnerability SecurityVulnerability `json:"security_vulnerability"`
	URL                   string                `json:"url"`
	HTMLURL               string                `json:"html_url"`
	CreatedAt             time.Time             `json:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at"`
}

// SecurityAdvisory is the advisory an alert refers to.
type SecurityAdvisory struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// SecurityVulnerability carries the severity reported for the vulnerable package.
type SecurityVulnerability struct {
	Severity string `json:"severity"`
}

// Decode reads alerts from r. Both a JSON array and a single alert object are accepted.
func Decode(r io.Reader) ([]DependabotAlert, error) {
	br := bufio.NewReader(r)

	first, err := firstNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	dec := json.NewDecoder(br)
	switch first {
	case '[':
		var list []DependabotAlert
		if err := dec.Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to decode alerts: %w", err)
		}
		return list, nil
	case '{':
		var one DependabotAlert
		if err := dec.Decode(&one); err != nil {
			return nil, fmt.Errorf("failed to decode alert: %w", err)
		}
		return []DependabotAlert{one}, nil
	default:
		return nil, fmt.Errorf("unexpected alerts payload starting with %q", first)
	}
}

// firstNonSpace peeks the first non-whitespace byte without consuming it.
func firstNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

// FilterByState returns the alerts whose state equals state. An empty state keeps all.
func FilterByState(list []DependabotAlert, state string) []DependabotAlert {
	if state == "" {
		return list
	}
	out := make([]DependabotAlert, 0, len(list))
	for _, a := range list {
		if a.State == state {
			out = append(out, a)
		}
	}
	return out
}
