package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/indaco/vercheck/internal/policy"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json", "yaml", "github"}

// Validate checks a loaded configuration.
func Validate(cfg *Config) error {
	var errs []error

	if !slices.Contains(ValidFormats, cfg.Format) {
		errs = append(errs, fmt.Errorf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	if cfg.Manifest != filepath.Base(cfg.Manifest) {
		errs = append(errs, fmt.Errorf("invalid manifest %q: must be a file name, use path for the directory", cfg.Manifest))
	}

	if err := policy.ValidateRules(cfg.Rules); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
