package document

import "fmt"

// Severity grades a document error.
type Severity uint8

// Severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "error"
	}
}

// ErrorType identifies a structural problem.
type ErrorType uint8

// Error types.
const (
	// ExpectedTag means a required top-level element is missing.
	ExpectedTag ErrorType = iota
)

// Error is a structural problem found while building a document. These are
// distinct from syntax diagnostics.
type Error struct {
	Severity Severity
	Type     ErrorType

	// Tag is the element name for ExpectedTag.
	Tag string
}

// Message returns the human readable message without severity.
func (e Error) Message() string {
	switch e.Type {
	case ExpectedTag:
		return fmt.Sprintf("expected tag `%s`", e.Tag)
	default:
		return "document error"
	}
}

// Error implements error.
func (e Error) Error() string {
	return e.Severity.String() + ": " + e.Message()
}
