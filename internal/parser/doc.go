// Package parser reads the declared version from manifest files in JSON, YAML, TOML
// or plain-text form.
package parser
