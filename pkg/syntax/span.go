// Package syntax provides the lexer, parser and statement tree for the smf
// UI description language. Every token and composite node carries a Span or
// Range so that editor tooling can map source positions back onto the tree.
package syntax

import "fmt"

// Span locates a single token in the source.
// Line and Column are 0-based; Column and Length count bytes.
type Span struct {
	// Line is the 0-based line number.
	Line int

	// Column is the 0-based byte column within the line.
	Column int

	// Length is the token length in bytes.
	Length int

	// TokenIndex is the index of the token in the lexer output.
	TokenIndex int

	// Offset is the byte offset of the token in the source.
	Offset int
}

// End returns the byte offset just past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Before reports whether s starts before other in document order.
func (s Span) Before(other Span) bool {
	if s.Line != other.Line {
		return s.Line < other.Line
	}
	return s.Column < other.Column
}

// String renders the span as 1-based line:column for humans.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line+1, s.Column+1)
}

// Range is a start/end pair of spans. End is the span of the last token
// covered by the range, so the range extends to End.End().
type Range struct {
	Start Span
	End   Span
}

// RangeOf builds a range covering start through end.
// The arguments are swapped when end precedes start.
func RangeOf(start, end Span) Range {
	if end.Before(start) {
		start, end = end, start
	}
	return Range{Start: start, End: end}
}

// SpanRange returns the range covering a single span.
func SpanRange(s Span) Range {
	return Range{Start: s, End: s}
}

// Contains reports whether the position of s lies within the range.
// The end bound includes the full length of the end span.
func (r Range) Contains(s Span) bool {
	if s.Line < r.Start.Line || s.Line > r.End.Line {
		return false
	}
	if s.Line == r.Start.Line && s.Column < r.Start.Column {
		return false
	}
	if s.Line == r.End.Line && s.Column > r.End.Column+r.End.Length {
		return false
	}
	return true
}

// Union returns the smallest range covering both r and other.
func (r Range) Union(other Range) Range {
	out := r
	if other.Start.Before(out.Start) {
		out.Start = other.Start
	}
	if out.End.Before(other.End) {
		out.End = other.End
	}
	return out
}
