package runner

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/layout"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/source"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Severity strings used by findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding origins.
const (
	OriginSyntax   = "syntax"
	OriginDocument = "document"
)

// Finding is one problem reported for a file. Positions are 1-based and
// relative to the file, so findings inside Markdown fences point at the
// Markdown line.
type Finding struct {
	Path      string
	Line      int
	Column    int
	EndLine   int
	EndColumn int

	Severity string
	Origin   string
	Kind     string
	Message  string
}

// BlockOutcome summarises one checked source block.
type BlockOutcome struct {
	// Line is the 1-based file line of the block's first line.
	Line int

	// Nodes is the number of display nodes built.
	Nodes int

	// Bounds is the border rect of the root after layout.
	Bounds geom.Rect
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Blocks   []BlockOutcome
	Findings []Finding

	// Content is the file as read.
	Content []byte
}

// SourceLine returns the 1-based line of the checked file without its line
// ending, or "" when out of range.
func (r *CheckResult) SourceLine(line int) string {
	if r == nil || line < 1 {
		return ""
	}
	rest := r.Content
	for range line - 1 {
		idx := bytes.IndexByte(rest, '\n')
		if idx < 0 {
			return ""
		}
		rest = rest[idx+1:]
	}
	if idx := bytes.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[:idx]
	}
	return string(bytes.TrimSuffix(rest, []byte("\r")))
}

// Checker runs the per-file pipeline: extract blocks, parse, build the
// display tree and lay it out.
type Checker struct {
	Config   *config.Config
	Registry *registry.Registry
}

// NewChecker creates a checker. Nil arguments use the defaults.
func NewChecker(cfg *config.Config, reg *registry.Registry) *Checker {
	opts := Options{Config: cfg, Registry: reg}
	return &Checker{Config: opts.effectiveConfig(), Registry: opts.effectiveRegistry()}
}

// CheckFile reads path and checks it.
func (c *Checker) CheckFile(ctx context.Context, path string) (*CheckResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c.Check(ctx, path, content)
}

// Check checks in-memory content as if read from path.
func (c *Checker) Check(ctx context.Context, path string, content []byte) (*CheckResult, error) {
	result := &CheckResult{Content: content}
	layoutOpts := layout.OptionsFromConfig(c.Config.Layout)
	measurer := layout.MeasurerFor(c.Config.Layout.Measurer)
	viewport := layout.Viewport(c.Config.Layout)

	for _, block := range source.Extract(path, content) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("check %s: %w", path, err)
		}

		module, diags := smf.ParseFile(path, block.Content)
		for _, diag := range diags {
			result.Findings = append(result.Findings, syntaxFinding(path, block.Line, diag))
		}

		doc := document.Build(module, c.Registry)
		for _, docErr := range doc.Errors() {
			result.Findings = append(result.Findings, documentFinding(path, block.Line, docErr))
		}

		bounds := layout.New(doc, measurer, layoutOpts).Layout(viewport)
		result.Blocks = append(result.Blocks, BlockOutcome{
			Line:   block.Line + 1,
			Nodes:  len(doc.Nodes()),
			Bounds: bounds,
		})
	}
	return result, nil
}

func syntaxFinding(path string, lineOffset int, diag syntax.Diagnostic) Finding {
	finding := Finding{
		Path:     path,
		Line:     lineOffset + 1,
		Column:   1,
		Severity: SeverityError,
		Origin:   OriginSyntax,
		Kind:     diag.Kind.String(),
		Message:  diag.Message,
	}
	if diag.HasRange {
		start, end := diag.Range.Start, diag.Range.End
		finding.Line = lineOffset + start.Line + 1
		finding.Column = start.Column + 1
		finding.EndLine = lineOffset + end.Line + 1
		finding.EndColumn = end.Column + end.Length + 1
	}
	return finding
}

// documentFinding places a structural error at the start of its block.
func documentFinding(path string, lineOffset int, docErr document.Error) Finding {
	return Finding{
		Path:     path,
		Line:     lineOffset + 1,
		Column:   1,
		Severity: docErr.Severity.String(),
		Origin:   OriginDocument,
		Kind:     documentKind(docErr.Type),
		Message:  docErr.Message(),
	}
}

func documentKind(typ document.ErrorType) string {
	switch typ {
	case document.ExpectedTag:
		return "expected-tag"
	default:
		return "document"
	}
}
