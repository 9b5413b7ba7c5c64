package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gosmf/pkg/runner"
)

// FormatFinding formats a single finding for terminal output. When
// sourceLine is non-empty it is shown below with a caret under the column.
func (s *Styles) FormatFinding(finding *runner.Finding, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(finding.Path),
		finding.Line,
		finding.Column,
	)

	kind := s.Kind.Render("(" + finding.Origin + "/" + finding.Kind + ")")

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(finding.Severity),
		s.Message.Render(finding.Message),
		kind,
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, finding.Column))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string. Unknown severities are
// left plain.
func (s *Styles) FormatSeverity(severity string) string {
	return s.severityStyle(severity).Render(severity)
}

// FormatSourceContext formats the source line with a caret marker. Column
// is a 1-based byte column; the caret is placed by display width so wide
// runes before it keep it aligned.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		prefix := line
		if column-1 < len(prefix) {
			prefix = prefix[:column-1]
		}
		padding := indent + strings.Repeat(" ", runewidth.StringWidth(prefix))
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
