package syntax

import "fmt"

// DiagnosticKind classifies a syntax diagnostic.
type DiagnosticKind uint8

// Diagnostic kinds.
const (
	DiagUnexpectedToken DiagnosticKind = iota
	DiagMissingDelimiter
	DiagMissingComma
	DiagInvalidArguments
	DiagInvalidValue
)

// String returns the kind name used in reports.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagUnexpectedToken:
		return "unexpected-token"
	case DiagMissingDelimiter:
		return "missing-delimiter"
	case DiagMissingComma:
		return "missing-comma"
	case DiagInvalidArguments:
		return "invalid-arguments"
	case DiagInvalidValue:
		return "invalid-value"
	default:
		return "syntax"
	}
}

// Diagnostic is a non-fatal syntax problem found by the parser.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	Range   Range

	// HasRange is false when no source position is known.
	HasRange bool
}

// Error implements error so diagnostics can be joined at API boundaries.
func (d Diagnostic) Error() string {
	if !d.HasRange {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Range.Start, d.Message)
}
