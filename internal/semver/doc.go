// Package semver validates, parses and compares semantic version strings.
package semver
