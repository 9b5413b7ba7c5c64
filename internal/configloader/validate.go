package configloader

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/render"
	"github.com/yaklabco/gosmf/pkg/style"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "layout.direction").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the 1-based line of Field in FilePath, or 0.
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// knownMeasurers lists valid text measurer names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownMeasurers = map[string]bool{
	config.MeasurerFace:  true,
	config.MeasurerCells: true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatJSON:    true,
	config.FormatSARIF:   true,
	config.FormatSummary: true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	validateLayout(cfg.Layout, result)

	if cfg.Render.Background != "" {
		if _, err := render.ParseHex(cfg.Render.Background); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "render.background",
				Value:   cfg.Render.Background,
				Message: fmt.Sprintf("invalid colour %q; expected #rrggbb or #rrggbbaa", cfg.Render.Background),
			})
		}
	}

	if cfg.Formatter.Indent < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "fmt.indent",
			Value:   cfg.Formatter.Indent,
			Message: "indent must not be negative",
		})
	}

	if cfg.Format != "" && !IsValidFormat(cfg.Format) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, sarif, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateLayout(layout config.LayoutConfig, result *ValidationResult) {
	nonNegative := []struct {
		field string
		value float64
	}{
		{"layout.scale", layout.Scale},
		{"layout.text_size", layout.TextSize},
		{"layout.width", layout.Width},
		{"layout.height", layout.Height},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "must not be negative",
			})
		}
	}

	if layout.Gap < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "layout.gap",
			Value:   layout.Gap,
			Message: "gap must be >= 0",
		})
	}

	if layout.Direction != "" {
		if _, ok := style.ParseDirection(layout.Direction); !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field: "layout.direction",
				Value: layout.Direction,
				Message: fmt.Sprintf("invalid direction %q; must be one of: "+
					"vertical, verticalReverse, horizontal, horizontalReverse", layout.Direction),
			})
		}
	}

	if layout.Measurer != "" && !IsValidMeasurer(layout.Measurer) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "layout.measurer",
			Value:   layout.Measurer,
			Message: fmt.Sprintf("invalid measurer %q; must be one of: face, cells", layout.Measurer),
		})
	}
}

// validateExtensions warns about extensions that can never match a file name.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q does not start with a dot and will never match", ext),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// path.Match returns an error only for malformed patterns
		_, err := path.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates a configuration read from filePath. Findings
// name the file and, when content is given, the line of their field.
func ValidateWithFile(cfg *config.Config, filePath string, content []byte) *ValidationResult {
	result := Validate(cfg)

	var root *yaml.Node
	var doc yaml.Node
	if len(content) > 0 && yaml.Unmarshal(content, &doc) == nil && len(doc.Content) > 0 {
		root = doc.Content[0]
	}

	for _, findings := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
			if root != nil {
				findings[i].Line = fieldLine(root, findings[i].Field)
			}
		}
	}
	return result
}

// fieldLine returns the line of a field path such as "layout.direction" or
// "ignore[1]" in a decoded document, or 0 when the path is absent.
func fieldLine(node *yaml.Node, field string) int {
	if field == "" {
		return 0
	}
	for part := range strings.SplitSeq(field, ".") {
		name, index, indexed := splitIndex(part)
		node = mappingValue(node, name)
		if node == nil {
			return 0
		}
		if indexed {
			if node.Kind != yaml.SequenceNode || index >= len(node.Content) {
				return 0
			}
			node = node.Content[index]
		}
	}
	return node.Line
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// splitIndex splits "ignore[2]" into "ignore" and 2.
func splitIndex(part string) (string, int, bool) {
	open := strings.IndexByte(part, '[')
	if open < 0 || !strings.HasSuffix(part, "]") {
		return part, 0, false
	}
	index, err := strconv.Atoi(part[open+1 : len(part)-1])
	if err != nil || index < 0 {
		return part, 0, false
	}
	return part[:open], index, true
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}

// IsValidMeasurer returns true if the measurer name is valid.
func IsValidMeasurer(name string) bool {
	return knownMeasurers[name]
}
