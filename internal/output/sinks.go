package output

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how outputs are published.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatGitHub Format = "github"
)

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatGitHub:
		return true
	default:
		return false
	}
}

// NewSink returns the sink for format. FormatGitHub appends to the file named by
// githubOutputPath; the other formats write to w.
func NewSink(format Format, w io.Writer, githubOutputPath string) (Sink, error) {
	switch format {
	case FormatText:
		return &TextSink{w: w}, nil
	case FormatJSON, FormatYAML:
		return &StructuredSink{w: w, format: format}, nil
	case FormatGitHub:
		if githubOutputPath == "" {
			return nil, fmt.Errorf("GITHUB_OUTPUT is not set")
		}
		return &GitHubSink{path: githubOutputPath}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// TextSink writes name=value lines.
type TextSink struct {
	w io.Writer
}

// NewTextSink creates a TextSink writing to w.
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) SetOutput(name, value string) error {
	_, err := fmt.Fprintf(s.w, "%s=%s\n", name, value)
	return err
}

// GitHubSink collects outputs and appends them on Flush to the file GitHub Actions
// reads step outputs from, in a single write.
type GitHubSink struct {
	path string
	buf  bytes.Buffer
}

// NewGitHubSink creates a GitHubSink for the file at path.
func NewGitHubSink(path string) *GitHubSink {
	return &GitHubSink{path: path}
}

// newDelimiter is swapped in tests for deterministic output.
var newDelimiter = func() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return "ghadelimiter_" + hex.EncodeToString(b)
}

func (s *GitHubSink) SetOutput(name, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		delim := newDelimiter()
		fmt.Fprintf(&s.buf, "%s<<%s\n%s\n%s\n", name, delim, value, delim)
		return nil
	}
	fmt.Fprintf(&s.buf, "%s=%s\n", name, value)
	return nil
}

// Flush appends the collected outputs to the file.
func (s *GitHubSink) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644) //nolint:gosec // G302: runner-owned file
	if err != nil {
		return err
	}

	if _, err := f.Write(s.buf.Bytes()); err != nil {
		_ = f.Close()
		return err
	}
	s.buf.Reset()
	return f.Close()
}

// StructuredSink buffers outputs and writes them as one JSON or YAML document on Flush.
type StructuredSink struct {
	w      io.Writer
	format Format
	keys   []string
	values map[string]string
}

func (s *StructuredSink) SetOutput(name, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, seen := s.values[name]; !seen {
		s.keys = append(s.keys, name)
	}
	s.values[name] = value
	return nil
}

// Flush writes the buffered outputs.
func (s *StructuredSink) Flush() error {
	var (
		data []byte
		err  error
	)

	switch s.format {
	case FormatYAML:
		items := make(yaml.MapSlice, 0, len(s.keys))
		for _, k := range s.keys {
			items = append(items, yaml.MapItem{Key: k, Value: s.values[k]})
		}
		data, err = yaml.Marshal(items)
	default:
		data, err = marshalOrderedJSON(s.keys, s.values)
	}
	if err != nil {
		return fmt.Errorf("failed to encode outputs as %s: %w", s.format, err)
	}

	_, err = s.w.Write(data)
	return err
}

// marshalOrderedJSON encodes values as a JSON object keeping insertion order.
func marshalOrderedJSON(keys []string, values map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(values[k])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
		if i < len(keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}
