// Package smf ties the pipeline stages together: a Module is the token
// stream, statement tree and symbol table of one source text.
package smf

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Module is the complete parser output for one source text.
// It is read-only once Parse returns.
type Module struct {
	// Path is the source path (may be empty for in-memory content).
	Path string

	// Content is the full source text.
	Content string

	// Lines contains metadata for each line in the source.
	Lines []LineInfo

	// Tokens is the full token stream covering every byte.
	Tokens []syntax.Token

	Statements []syntax.Statement
	Symbols    *symbols.Table
}

// Parse lexes, parses and builds symbols for content. A module is always
// returned; diagnostics are non-fatal.
func Parse(content string) (*Module, []syntax.Diagnostic) {
	return ParseFile("", content)
}

// ParseFile is Parse with a path recorded on the module.
func ParseFile(path, content string) (*Module, []syntax.Diagnostic) {
	tokens := syntax.Lex(content)
	statements, diags := syntax.Parse(tokens)
	return &Module{
		Path:       path,
		Content:    content,
		Lines:      BuildLines(content),
		Tokens:     tokens,
		Statements: statements,
		Symbols:    symbols.Build(statements),
	}, diags
}

// Format returns the canonical source of the module.
func (m *Module) Format(opts syntax.FormatOptions) string {
	return syntax.FormatWith(m.Statements, opts)
}

// ErrFormatBroken is returned when formatted output no longer parses.
var ErrFormatBroken = errors.New("formatted source does not parse")

// FormatChecked formats the module and re-parses the result. Output that
// would introduce diagnostics is never returned.
func (m *Module) FormatChecked(opts syntax.FormatOptions) (string, error) {
	formatted := m.Format(opts)
	if _, diags := syntax.Parse(syntax.Lex(formatted)); len(diags) > 0 {
		return "", fmt.Errorf("%w: %s", ErrFormatBroken, diags[0].Error())
	}
	return formatted, nil
}
