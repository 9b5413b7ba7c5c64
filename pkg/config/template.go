package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var (
		content []byte
		err     error
	)
	if opts.Full {
		content, err = NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
		if err != nil {
			return nil, err
		}
	} else {
		content = []byte(minimalTemplate)
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}
	return content, nil
}

const minimalTemplate = `# gosmf configuration
# See: https://github.com/yaklabco/gosmf

layout:
  # Global scale applied to text sizes and default spacing
  scale: 2
  # Unscaled text size in pixels
  # text_size: 12
  # Default gap between children
  # gap: 4
  # vertical, verticalReverse, horizontal or horizontalReverse
  # direction: vertical
  # Root viewport
  # width: 800
  # height: 600
  # face or cells
  # measurer: face

# render:
#   background: "#ffffff"

# fmt:
#   indent: 4

# File extensions to check; Markdown files are scanned for smf fences
# extensions: [".smf", ".md"]

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
`

// templateToJSON converts a YAML template to JSON. Comments are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gosmf configuration
# See: https://github.com/yaklabco/gosmf`
}
