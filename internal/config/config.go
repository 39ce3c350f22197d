// Package config loads and saves the .vercheck.yaml configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vercheck/internal/core"
	"github.com/indaco/vercheck/internal/policy"
)

const (
	// DefaultConfigFile is the configuration file looked up in the working directory.
	DefaultConfigFile = ".vercheck.yaml"

	// DefaultManifest is the manifest file name checked when none is configured.
	DefaultManifest = "package.json"

	// DefaultFormat is the output format used outside GitHub Actions.
	DefaultFormat = "text"
)

// Config is the main configuration structure for vercheck.
type Config struct {
	// Path is the directory containing the manifest file.
	Path string `yaml:"path"`

	// Manifest is the manifest file name inside Path.
	Manifest string `yaml:"manifest,omitempty"`

	// Format selects the output sink: text, json, yaml or github.
	Format string `yaml:"format,omitempty"`

	// RequireIncrease fails the check when a changed version does not increase.
	RequireIncrease bool `yaml:"require-increase,omitempty"`

	// Rules are versioning policies checked against every detected change.
	Rules []policy.Rule `yaml:"rules,omitempty"`
}

// Default returns the configuration used when no file or environment override exists.
func Default() *Config {
	return &Config{
		Path:     ".",
		Manifest: DefaultManifest,
		Format:   DefaultFormat,
	}
}

// ManifestPath joins Path and Manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Path, c.Manifest)
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// SaveTo saves the configuration to the specified file path.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, core.PermOwnerRW)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are swapped in tests.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config, configFile string) error {
		return defaultConfigSaver.SaveTo(cfg, configFile)
	}
)

// loadConfig resolves the configuration. VERCHECK_PATH has the highest priority for the
// manifest directory, then .vercheck.yaml, then defaults.
func loadConfig() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(DefaultConfigFile)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	if envPath := os.Getenv("VERCHECK_PATH"); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid VERCHECK_PATH: path traversal not allowed, use absolute path instead")
		}
		cfg.Path = cleanPath
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Path == "" {
		cfg.Path = "."
	}
	if cfg.Manifest == "" {
		cfg.Manifest = DefaultManifest
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}
