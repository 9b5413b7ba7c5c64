// Package pretty renders diagnostics, summaries and trees for the terminal.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultTermWidth is used when the writer is not a terminal.
const defaultTermWidth = 100

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the lipgloss styles used by the CLI and reporters.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Kind       lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Display tree: node kinds, connectors and box geometry.
	TreeRoot       lipgloss.Style
	TreeItem       lipgloss.Style
	TreeEnumerator lipgloss.Style
	TreeDetail     lipgloss.Style

	Dim lipgloss.Style
}

// palette maps style roles to ANSI colors. An empty color leaves the
// foreground untouched.
type palette struct {
	red, yellow, blue, green, cyan, grey, light lipgloss.Color
	bold                                        bool
}

var (
	ansiPalette = palette{
		red: "9", yellow: "11", blue: "12", green: "10",
		cyan: "14", grey: "8", light: "7", bold: true,
	}
	plainPalette = palette{}
)

// NewStyles returns the colored styles, or unformatted ones when
// colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	if colorEnabled {
		return ansiPalette.styles()
	}
	return plainPalette.styles()
}

func (p palette) fg(c lipgloss.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != "" {
		s = s.Foreground(c)
	}
	return s
}

func (p palette) strong(c lipgloss.Color) lipgloss.Style {
	return p.fg(c).Bold(p.bold)
}

func (p palette) styles() *Styles {
	return &Styles{
		Error:   p.strong(p.red),
		Warning: p.strong(p.yellow),
		Info:    p.strong(p.blue),

		FilePath:   p.strong(""),
		Kind:       p.fg(p.grey),
		Message:    lipgloss.NewStyle(),
		SourceLine: p.fg(p.light),
		Caret:      p.fg(p.red),

		SummaryTitle: p.strong(""),
		SummaryValue: lipgloss.NewStyle(),
		Success:      p.strong(p.green),
		Failure:      p.strong(p.red),

		TreeRoot:       p.strong(p.cyan),
		TreeItem:       lipgloss.NewStyle(),
		TreeEnumerator: p.fg(p.grey),
		TreeDetail:     p.fg(p.grey),

		Dim: p.fg(p.grey),
	}
}

// IsColorEnabled reports whether output to writer should be colored.
// Unknown modes behave like ColorAuto, which requires a terminal and an
// unset NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// TerminalWidth returns the column count of writer when it is a terminal,
// or a default width otherwise.
func TerminalWidth(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}
