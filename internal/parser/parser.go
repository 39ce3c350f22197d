package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vercheck/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// DefaultField is the manifest key read when FileConfig.Field is empty.
const DefaultField = "version"

// unmarshalers decode structured manifests into generic maps.
var unmarshalers = map[Format]func([]byte, any) error{
	FormatJSON: json.Unmarshal,
	FormatYAML: yaml.Unmarshal,
	FormatTOML: toml.Unmarshal,
}

// Reader reads declared versions from manifest files.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads a version from a file based on the provided configuration.
// An empty Format is inferred from the file extension.
func (r *Reader) Read(ctx context.Context, cfg FileConfig) (*Result, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if cfg.Format == "" {
		cfg.Format = FormatForPath(cfg.Path)
	}
	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}
	if cfg.Field == "" && cfg.Format != FormatRaw {
		cfg.Field = DefaultField
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var version string
	if cfg.Format == FormatRaw {
		version = strings.TrimSpace(string(data))
	} else {
		version, err = readField(data, cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Version: version,
		Path:    cfg.Path,
		Format:  cfg.Format,
		Field:   cfg.Field,
	}, nil
}

// ReadVersion is a convenience method that reads and returns just the version string.
func (r *Reader) ReadVersion(ctx context.Context, cfg FileConfig) (string, error) {
	result, err := r.Read(ctx, cfg)
	if err != nil {
		return "", err
	}
	return result.Version, nil
}

// readField decodes a structured manifest and returns the string at cfg.Field.
func readField(data []byte, cfg FileConfig) (string, error) {
	unmarshal, ok := unmarshalers[cfg.Format]
	if !ok {
		return "", fmt.Errorf("unsupported format: %s", cfg.Format)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", strings.ToUpper(cfg.Format.String()), cfg.Path, err)
	}

	value, err := getNestedValue(obj, cfg.Field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", cfg.Path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", cfg.Field, cfg.Path)
	}
	return version, nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "tool.poetry.version" accesses obj["tool"]["poetry"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
