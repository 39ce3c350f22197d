package initialize

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/indaco/vercheck/internal/config"
)

const configHeader = `# vercheck configuration file
#
# path:             directory containing the manifest (env: VERCHECK_PATH, flag: --path)
# manifest:         manifest file name inside path
# format:           output format (text, json, yaml, github)
# require-increase: fail when a changed version is not greater than the previous one

`

// GenerateConfigWithComments renders cfg as YAML preceded by a commented header.
func GenerateConfigWithComments(cfg *config.Config) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	buf.Write(body)
	return buf.Bytes(), nil
}

// commentedMarshaler lets ConfigSaver write the commented template.
type commentedMarshaler struct{}

func (commentedMarshaler) Marshal(v any) ([]byte, error) {
	cfg, ok := v.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("unexpected config type %T", v)
	}
	return GenerateConfigWithComments(cfg)
}
