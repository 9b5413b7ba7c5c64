package syntax

import "strconv"

// TokenKind classifies a lexed token.
type TokenKind uint8

// Token kinds. Whitespace and Newline tokens are kept in the stream so the
// lexer output covers every byte of the source.
const (
	TokIdent TokenKind = iota
	TokInteger
	TokFloat
	TokText
	TokOperator
	TokNewline
	TokWhitespace
)

// String returns a short name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "identifier"
	case TokInteger:
		return "integer"
	case TokFloat:
		return "float"
	case TokText:
		return "text"
	case TokOperator:
		return "operator"
	case TokNewline:
		return "newline"
	case TokWhitespace:
		return "whitespace"
	default:
		return "token(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operator identifies a single-character punctuation token.
type Operator uint8

// Operators recognised by the lexer.
const (
	OpNone Operator = iota
	OpOpenParen
	OpCloseParen
	OpOpenBrace
	OpCloseBrace
	OpOpenSquare
	OpCloseSquare
	OpColon
	OpComma
	OpDot
)

// String returns the operator quoted in backticks, as used in diagnostics.
func (o Operator) String() string {
	switch o {
	case OpOpenParen:
		return "`(`"
	case OpCloseParen:
		return "`)`"
	case OpOpenBrace:
		return "`{`"
	case OpCloseBrace:
		return "`}`"
	case OpOpenSquare:
		return "`[`"
	case OpCloseSquare:
		return "`]`"
	case OpColon:
		return "`:`"
	case OpComma:
		return "`,`"
	case OpDot:
		return "`.`"
	default:
		return "`?`"
	}
}

// Unit is a physical unit attached to a numeric literal.
type Unit uint8

// Units. Only pixels exist today.
const (
	UnitNone Unit = iota
	UnitPixel
)

// Suffix returns the source suffix for the unit.
func (u Unit) Suffix() string {
	if u == UnitPixel {
		return "px"
	}
	return ""
}

// Token is an immutable lexed token.
type Token struct {
	Kind TokenKind
	Span Span

	// Text holds the identifier name, the text run value, or the numeric lexeme.
	Text string

	// Quoted is set for text runs written as "...".
	Quoted bool

	// Title is set for text captured from a ": ..." line.
	Title bool

	Operator Operator
	Int      uint64
	Float    float64
	Unit     Unit
}

// Raw returns the exact source bytes covered by the token.
func (t Token) Raw(src string) string {
	end := t.Span.End()
	if t.Span.Offset < 0 || end > len(src) || t.Span.Offset > end {
		return ""
	}
	return src[t.Span.Offset:end]
}

// Is reports whether the token is the given operator.
func (t Token) Is(op Operator) bool {
	return t.Kind == TokOperator && t.Operator == op
}

// IsIdent reports whether the token is an identifier, optionally with the given name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == TokIdent && (name == "" || t.Text == name)
}

// Describe renders the token for diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case TokOperator:
		return t.Operator.String()
	case TokNewline:
		return "end of line"
	case TokIdent, TokInteger, TokFloat:
		return "`" + t.Text + t.Unit.Suffix() + "`"
	case TokText:
		return "text `" + t.Text + "`"
	default:
		return t.Kind.String()
	}
}
