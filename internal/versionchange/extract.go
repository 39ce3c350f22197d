// Package versionchange detects a change of a manifest's top-level "version" field
// in a word-level git diff and validates both sides as semantic versions.
package versionchange

import (
	"fmt"
	"regexp"

	"github.com/indaco/vercheck/internal/semver"
)

// versionChangeRegex matches the shape `git diff --word-diff` produces when a JSON
// "version" value is replaced:
//
//	"version": [-"1.2.3",-]{+"1.3.0",+}
//
// The trailing comma is optional so the field may be the last key of its object.
// Only the first match in a diff is considered: a manifest declares "version" once,
// and a second change (another key with the same name, another hunk) is ignored.
var versionChangeRegex = regexp.MustCompile(`"version":\s*\[-"(.*?)",?-\]\{\+"(.*?)",?\+\}`)

// Role identifies which side of a change a version came from.
type Role string

const (
	RoleOld Role = "old"
	RoleNew Role = "new"
)

// InvalidVersionError is returned when a matched version is not a semantic version.
type InvalidVersionError struct {
	Role  Role
	Value string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("The %s version %q is invalid.", e.Role, e.Value)
}

// Result is the outcome of a detection. The zero value means unchanged.
type Result struct {
	Changed    bool
	OldVersion string
	NewVersion string
}

// Bump classifies the change. It returns an empty string when nothing changed.
func (r Result) Bump() string {
	if !r.Changed {
		return ""
	}
	old, err := semver.ParseVersion(r.OldVersion)
	if err != nil {
		return ""
	}
	next, err := semver.ParseVersion(r.NewVersion)
	if err != nil {
		return ""
	}
	return semver.Classify(old, next).String()
}

// Extract finds the first "version" change in diff and validates both values.
// It has no side effects; the returned versions are the literals found in the diff.
func Extract(diff string) (Result, error) {
	matches := versionChangeRegex.FindStringSubmatch(diff)
	if matches == nil {
		return Result{}, nil
	}

	oldVersion, newVersion := matches[1], matches[2]

	if !semver.Valid(oldVersion) {
		return Result{}, &InvalidVersionError{Role: RoleOld, Value: oldVersion}
	}
	if !semver.Valid(newVersion) {
		return Result{}, &InvalidVersionError{Role: RoleNew, Value: newVersion}
	}

	return Result{Changed: true, OldVersion: oldVersion, NewVersion: newVersion}, nil
}
