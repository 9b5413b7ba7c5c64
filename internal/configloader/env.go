package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gosmf/pkg/config"
)

// envVarPrefix starts every gosmf environment variable.
const envVarPrefix = "GOSMF_"

// envVar binds GOSMF_<suffix> to one config field.
type envVar struct {
	suffix string
	field  string
	help   string
	apply  func(cfg *config.Config, value string) error
}

// envVars is ordered by config section so errors and help are stable.
//
//nolint:gochecknoglobals // read-only table
var envVars = []envVar{
	{"LAYOUT_SCALE", "layout.scale", "Global scale for text and default spacing",
		floatVar(func(c *config.Config) *float64 { return &c.Layout.Scale })},
	{"TEXT_SIZE", "layout.text_size", "Unscaled text size in pixels",
		floatVar(func(c *config.Config) *float64 { return &c.Layout.TextSize })},
	{"GAP", "layout.gap", "Unscaled default gap between children",
		floatVar(func(c *config.Config) *float64 { return &c.Layout.Gap })},
	{"DIRECTION", "layout.direction", "Default stacking direction",
		stringVar(func(c *config.Config) *string { return &c.Layout.Direction })},
	{"WIDTH", "layout.width", "Root viewport width",
		floatVar(func(c *config.Config) *float64 { return &c.Layout.Width })},
	{"HEIGHT", "layout.height", "Root viewport height",
		floatVar(func(c *config.Config) *float64 { return &c.Layout.Height })},
	{"MEASURER", "layout.measurer", "Text measurer: face or cells",
		stringVar(func(c *config.Config) *string { return &c.Layout.Measurer })},
	{"RENDER_BACKGROUND", "render.background", "Canvas colour as #rrggbb",
		stringVar(func(c *config.Config) *string { return &c.Render.Background })},
	{"FMT_INDENT", "fmt.indent", "Spaces per indent level for gosmf fmt",
		intVar(func(c *config.Config) *int { return &c.Formatter.Indent })},
	{"FORMAT", "format", "Output format: text, json, sarif, or summary",
		func(c *config.Config, value string) error {
			c.Format = config.OutputFormat(value)
			return nil
		}},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)",
		intVar(func(c *config.Config) *int { return &c.Jobs })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config) *[]string { return &c.Ignore })},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions",
		listVar(func(c *config.Config) *[]string { return &c.Extensions })},
}

func stringVar(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		*field(cfg) = value
		return nil
	}
}

func intVar(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		*field(cfg) = n
		return nil
	}
}

func floatVar(field func(*config.Config) *float64) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		*field(cfg) = f
		return nil
	}
}

// listVar splits a comma-separated value, dropping blank elements.
func listVar(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		var items []string
		for item := range strings.SplitSeq(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(cfg) = items
		return nil
	}
}

// LoadFromEnv applies every set GOSMF_* variable to cfg. Empty variables are
// treated as unset.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// GetEnvVarName returns the variable that sets field, e.g. GOSMF_MEASURER
// for "layout.measurer", or "" if none does.
func GetEnvVarName(field string) string {
	for _, v := range envVars {
		if v.field == field {
			return envVarPrefix + v.suffix
		}
	}
	return ""
}

// ListEnvVars maps every supported variable to its help text.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for _, v := range envVars {
		vars[envVarPrefix+v.suffix] = v.help
	}
	return vars
}
