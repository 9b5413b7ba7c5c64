package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gosmf/pkg/runner"
)

const (
	summaryDividerWidth = 40
	summaryLabelWidth   = 19
)

// severityNoun pairs a severity with its singular and plural display words.
type severityNoun struct {
	severity  string
	one, many string
	title     string
}

var severityNouns = []severityNoun{
	{runner.SeverityError, "error", "errors", "Errors"},
	{runner.SeverityWarning, "warning", "warnings", "Warnings"},
	{runner.SeverityInfo, "info", "info", "Info"},
}

// count renders "1 file" or "3 files".
func count(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

func (s *Styles) severityStyle(severity string) lipgloss.Style {
	switch severity {
	case runner.SeverityError:
		return s.Error
	case runner.SeverityWarning:
		return s.Warning
	case runner.SeverityInfo:
		return s.Info
	default:
		return lipgloss.NewStyle()
	}
}

// FormatSummaryOneLine formats run statistics as a single line, such as
// "3 issues (2 errors, 1 warning) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var line string
	if stats.FindingsTotal == 0 {
		line = s.Success.Render("No issues found") + s.Dim.Render(fmt.Sprintf(" (%s, %s checked)",
			count(stats.FilesProcessed, "file", "files"),
			count(stats.BlocksChecked, "source", "sources")))
	} else {
		var bySeverity []string
		for _, noun := range severityNouns {
			if n := stats.FindingsBySeverity[noun.severity]; n > 0 {
				bySeverity = append(bySeverity, s.severityStyle(noun.severity).Render(count(n, noun.one, noun.many)))
			}
		}
		line = count(stats.FindingsTotal, "issue", "issues")
		if len(bySeverity) > 0 {
			line += " (" + strings.Join(bySeverity, ", ") + ")"
		}
		line += " in " + count(stats.FilesWithIssues, "file", "files")
	}
	if stats.FilesErrored > 0 {
		line += ", " + s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a block of labelled counts
// followed by the overall verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	stat := func(depth int, label string, value int, style lipgloss.Style) {
		key := strings.Repeat("  ", depth) + label + ":"
		fmt.Fprintf(&b, "  %-*s%s\n", summaryLabelWidth, key, style.Render(strconv.Itoa(value)))
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	stat(0, "Files checked", stats.FilesProcessed, s.SummaryValue)
	stat(0, "Sources checked", stats.BlocksChecked, s.SummaryValue)
	if stats.FilesWithIssues > 0 {
		stat(0, "Files with issues", stats.FilesWithIssues, s.Failure)
	}
	if stats.FilesErrored > 0 {
		stat(0, "Files unreadable", stats.FilesErrored, s.Failure)
	}
	b.WriteString("\n")

	stat(0, "Total issues", stats.FindingsTotal, s.SummaryValue)
	for _, noun := range severityNouns {
		if n := stats.FindingsBySeverity[noun.severity]; n > 0 {
			stat(1, noun.title, n, s.severityStyle(noun.severity))
		}
	}
	b.WriteString("\n")

	switch {
	case stats.FindingsBySeverity[runner.SeverityError] > 0 || stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Check failed with errors"))
	case stats.FindingsBySeverity[runner.SeverityWarning] > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")

	return b.String()
}
