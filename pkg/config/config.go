// Package config defines core configuration types for gosmf.
// These types are pure data structures with no dependency on the loader.
package config

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// Measurer names select the text measurement backend.
const (
	MeasurerFace  = "face"
	MeasurerCells = "cells"
)

// LayoutConfig holds the layout engine defaults.
type LayoutConfig struct {
	// Scale multiplies text sizes and default spacing.
	Scale float64 `mapstructure:"scale" yaml:"scale"`

	// TextSize is the unscaled text size in pixels.
	TextSize float64 `mapstructure:"text_size" yaml:"text_size"`

	// Gap is the unscaled spacing between children when no style sets one.
	Gap float64 `mapstructure:"gap" yaml:"gap"`

	// Direction is the stacking direction when no style sets one.
	Direction string `mapstructure:"direction" yaml:"direction"`

	// Width and Height size the root viewport.
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`

	// Measurer is "face" (bitmap font) or "cells" (terminal cells).
	Measurer string `mapstructure:"measurer" yaml:"measurer"`
}

// RenderConfig controls rasterisation.
type RenderConfig struct {
	// Background is the canvas colour as #rrggbb or #rrggbbaa.
	Background string `mapstructure:"background" yaml:"background"`
}

// FormatterConfig controls `gosmf fmt`.
type FormatterConfig struct {
	Indent int `mapstructure:"indent" yaml:"indent"`
}

// Config is the root configuration structure for gosmf.
type Config struct {
	Layout    LayoutConfig    `mapstructure:"layout" yaml:"layout"`
	Render    RenderConfig    `mapstructure:"render" yaml:"render"`
	Formatter FormatterConfig `mapstructure:"fmt" yaml:"fmt"`

	// Extensions lists the file extensions checked during discovery.
	// Markdown files are scanned for smf code fences.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			Scale:     2,
			TextSize:  12,
			Gap:       4,
			Direction: "vertical",
			Width:     800,
			Height:    600,
			Measurer:  MeasurerFace,
		},
		Render: RenderConfig{
			Background: "#ffffff",
		},
		Formatter: FormatterConfig{
			Indent: 4,
		},
		Extensions: []string{".smf", ".md"},
		Format:     FormatText,
		Jobs:       0, // 0 means use GOMAXPROCS
	}
}
