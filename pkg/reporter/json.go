package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gosmf/pkg/runner"
)

// jsonSchemaVersion is bumped when the JSON shape changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path     string        `json:"path"`
	Blocks   []JSONBlock   `json:"blocks"`
	Findings []JSONFinding `json:"findings"`
	Error    string        `json:"error,omitempty"`
}

// JSONBlock summarises one checked source.
type JSONBlock struct {
	Line   int        `json:"line"`
	Nodes  int        `json:"nodes"`
	Bounds [4]float64 `json:"bounds"`
}

// JSONFinding represents a single finding.
type JSONFinding struct {
	Origin      string `json:"origin"`
	Kind        string `json:"kind"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine,omitempty"`
	EndColumn   int    `json:"endColumn,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesErrored    int            `json:"filesErrored"`
	BlocksChecked   int            `json:"blocksChecked"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{
		Version: jsonSchemaVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result != nil {
		for _, file := range result.Files {
			output.add(r.opts.displayPath(file.Path), file)
		}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(&output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.TotalIssues, nil
}

// add appends one file's blocks and findings and updates the summary.
func (o *JSONOutput) add(path string, file runner.FileOutcome) {
	entry := JSONFileResult{
		Path:     path,
		Blocks:   []JSONBlock{},
		Findings: []JSONFinding{},
	}
	if file.Error != nil {
		entry.Error = file.Error.Error()
		o.Summary.FilesErrored++
	}
	if file.Result != nil {
		for _, block := range file.Result.Blocks {
			b := block.Bounds
			entry.Blocks = append(entry.Blocks, JSONBlock{
				Line:   block.Line,
				Nodes:  block.Nodes,
				Bounds: [4]float64{b.X0, b.Y0, b.X1, b.Y1},
			})
		}
		o.Summary.BlocksChecked += len(entry.Blocks)
	}
	for _, f := range file.Findings() {
		entry.Findings = append(entry.Findings, JSONFinding{
			Origin:      f.Origin,
			Kind:        f.Kind,
			Severity:    f.Severity,
			Message:     f.Message,
			StartLine:   f.Line,
			StartColumn: f.Column,
			EndLine:     f.EndLine,
			EndColumn:   f.EndColumn,
		})
		o.Summary.BySeverity[cmp.Or(f.Severity, runner.SeverityWarning)]++
	}
	o.Summary.TotalIssues += len(entry.Findings)
	if len(entry.Findings) > 0 {
		o.Summary.FilesWithIssues++
	}
	o.Summary.FilesChecked++
	o.Files = append(o.Files, entry)
}
