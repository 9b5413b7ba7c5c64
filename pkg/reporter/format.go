package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names an output format of "gosmf check".
type Format string

// Output formats. FormatText is used when none is given.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
)

// formats is every Format in the order help text lists them.
//
//nolint:gochecknoglobals // read-only table
var formats = []Format{FormatText, FormatJSON, FormatSARIF, FormatSummary}

// Formats returns the supported formats.
func Formats() []Format {
	return slices.Clone(formats)
}

// FormatList joins the supported formats for flag help and error messages.
func FormatList() string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ParseFormat maps a --format value to a Format. Matching ignores case and
// the empty string selects text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, FormatList())
	}
	return format, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(formats, f)
}
