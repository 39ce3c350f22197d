// Package output publishes detection results as named values to CI output sinks.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/indaco/vercheck/internal/versionchange"
)

// Output names.
const (
	NameChanged         = "changed"
	NameVersion         = "version"
	NamePreviousVersion = "previous-version"
	NameBump            = "bump"

	// Undefined is reported as the version when nothing changed.
	Undefined = "undefined"
)

// Sink receives named output values.
type Sink interface {
	SetOutput(name, value string) error
}

// Flusher is implemented by sinks that buffer values until the run completes.
type Flusher interface {
	Flush() error
}

// Report sets the outputs for result on sink. changed and version are always set.
func Report(sink Sink, result versionchange.Result) error {
	version := Undefined
	if result.Changed {
		version = result.NewVersion
	}

	values := []struct{ name, value string }{
		{NameChanged, strconv.FormatBool(result.Changed)},
		{NameVersion, version},
		{NamePreviousVersion, result.OldVersion},
		{NameBump, result.Bump()},
	}

	for _, v := range values {
		if err := sink.SetOutput(v.name, v.value); err != nil {
			return fmt.Errorf("failed to set output %q: %w", v.name, err)
		}
	}

	if f, ok := sink.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// ReportFailure writes msg once to w. When annotate is true the message is emitted as a
// GitHub Actions error annotation.
func ReportFailure(w io.Writer, msg string, annotate bool) {
	if annotate {
		fmt.Fprintf(w, "::error::%s\n", escapeData(msg))
		return
	}
	fmt.Fprintln(w, msg)
}

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	r := strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	return r.Replace(s)
}
