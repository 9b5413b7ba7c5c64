package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gosmf/internal/ui/pretty"
	"github.com/yaklabco/gosmf/pkg/runner"
)

// Column layout for the summary tables.
const (
	kindColWidth  = 36
	minLabelWidth = 12
	countColWidth = 7
	maxTableRows  = 20
)

// SummaryReporter prints aggregate tables instead of individual findings.
type SummaryReporter struct {
	opts       Options
	styles     *pretty.Styles
	bw         *bufio.Writer
	labelWidth int
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:       opts,
		styles:     pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:         bufio.NewWriterSize(opts.Writer, bufWriterSize),
		labelWidth: summaryLabelWidth(opts),
	}
}

// summaryLabelWidth narrows the label column so a row fits the terminal
// next to the three count columns.
func summaryLabelWidth(opts Options) int {
	return max(minLabelWidth, min(kindColWidth, pretty.TerminalWidth(opts.Writer)-3*(countColWidth+1)-2))
}

// countRow is one line of a summary table.
type countRow struct {
	label    string
	total    int
	errors   int
	warnings int
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	kinds := map[string]*countRow{}
	var files []countRow
	var total int

	for _, file := range result.Files {
		findings := file.Findings()
		if len(findings) == 0 {
			continue
		}
		fileRow := countRow{label: r.opts.displayPath(file.Path)}
		for _, finding := range findings {
			key := finding.Origin + "/" + finding.Kind
			row, ok := kinds[key]
			if !ok {
				row = &countRow{label: key}
				kinds[key] = row
			}
			row.add(finding.Severity)
			fileRow.add(finding.Severity)
		}
		files = append(files, fileRow)
		total += len(findings)
	}

	kindRows := make([]countRow, 0, len(kinds))
	for _, row := range kinds {
		kindRows = append(kindRows, *row)
	}

	if len(kindRows) > 0 {
		r.writeTable("Findings by kind", kindRows)
		r.writeTable("Files with issues", files)
	}
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return total, nil
}

func (row *countRow) add(severity string) {
	row.total++
	switch severity {
	case runner.SeverityError:
		row.errors++
	case runner.SeverityWarning:
		row.warnings++
	}
}

// writeTable prints rows sorted by total, largest first. Long tables are cut
// at maxTableRows.
func (r *SummaryReporter) writeTable(title string, rows []countRow) {
	slices.SortFunc(rows, func(a, b countRow) int {
		if c := cmp.Compare(b.total, a.total); c != 0 {
			return c
		}
		return cmp.Compare(a.label, b.label)
	})

	fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render(title))
	fmt.Fprintf(r.bw, "  %s %s %s %s\n",
		runewidth.FillRight("", r.labelWidth),
		padCount("total"), padCount("errors"), padCount("warn"))

	shown := rows
	if len(shown) > maxTableRows {
		shown = shown[:maxTableRows]
	}
	for _, row := range shown {
		label := runewidth.Truncate(row.label, r.labelWidth, "...")
		fmt.Fprintf(r.bw, "  %s %s %s %s\n",
			r.styles.FilePath.Render(runewidth.FillRight(label, r.labelWidth)),
			r.styles.SummaryValue.Render(padCount(strconv.Itoa(row.total))),
			r.styles.Error.Render(padCount(strconv.Itoa(row.errors))),
			r.styles.Warning.Render(padCount(strconv.Itoa(row.warnings))),
		)
	}
	if hidden := len(rows) - len(shown); hidden > 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("  ... and %d more", hidden)))
	}
	fmt.Fprintln(r.bw)
}

// padCount right-aligns s in a count column. Padding is applied before
// styling so escape codes do not count toward the width.
func padCount(s string) string {
	return runewidth.FillLeft(s, countColWidth)
}
