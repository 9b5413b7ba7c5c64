package syntax

// Statement is a node of the general statement grammar.
// Implementations: *Element, *Style, *Use, *Text.
type Statement interface {
	Range() Range
	statementNode()
}

// StyleStatement is a node of the style grammar.
// Implementations: *StyleBlock, *StyleElement.
type StyleStatement interface {
	Range() Range
	styleNode()
}

// Value is a right-hand side of an argument or style property.
// Implementations: *Integer, *Float, *Ident, *Function, *Array, *Tuple.
type Value interface {
	Range() Range
	valueNode()
}

// Element is a named block such as view, setup or a nested child element.
type Element struct {
	// Token is the element name (identifier or text).
	Token Token

	// Args is nil when the element has no argument list.
	Args *ElementArgs

	Body      []Statement
	BodyRange Range

	// HasBody is false when the opening brace was missing.
	HasBody bool
}

// Name returns the element name.
func (e *Element) Name() string { return e.Token.Text }

// Range covers the name through the closing brace.
func (e *Element) Range() Range {
	r := SpanRange(e.Token.Span)
	if e.Args != nil {
		r = r.Union(e.Args.Range)
	}
	if e.HasBody {
		r = r.Union(e.BodyRange)
	}
	return r
}

func (*Element) statementNode() {}

// Style is a style block in statement position: `style { ... }` or `style name { ... }`.
type Style struct {
	// Keyword is the `style` token.
	Keyword Token

	// Token is the optional block name.
	Token *Token

	Body      []StyleStatement
	BodyRange Range
	HasBody   bool
}

// Name returns the block name, or "" when anonymous.
func (s *Style) Name() string {
	if s.Token == nil {
		return ""
	}
	return s.Token.Text
}

// Range covers the keyword through the closing brace.
func (s *Style) Range() Range {
	r := SpanRange(s.Keyword.Span)
	if s.HasBody {
		r = r.Union(s.BodyRange)
	}
	return r
}

func (*Style) statementNode() {}

// Use imports a scope by dotted path.
type Use struct {
	Token Token
	Path  []Token
}

// PathNames returns the dotted path segments.
func (u *Use) PathNames() []string {
	names := make([]string, 0, len(u.Path))
	for _, tok := range u.Path {
		names = append(names, tok.Text)
	}
	return names
}

// Range covers the keyword through the last path segment.
func (u *Use) Range() Range {
	if len(u.Path) == 0 {
		return SpanRange(u.Token.Span)
	}
	return RangeOf(u.Token.Span, u.Path[len(u.Path)-1].Span)
}

func (*Use) statementNode() {}

// Text is a free text leaf.
type Text struct {
	Token Token
}

// Value returns the text content.
func (t *Text) Value() string { return t.Token.Text }

// Range covers the text token.
func (t *Text) Range() Range { return SpanRange(t.Token.Span) }

func (*Text) statementNode() {}

// StyleBlock is a nested block inside a style body.
type StyleBlock struct {
	// Start is the first token of the block: its name, `style` keyword, or `{`.
	Start Token

	// Token is the optional block name.
	Token *Token

	Body      []StyleStatement
	BodyRange Range
	HasBody   bool
}

// Name returns the block name, or "" when anonymous.
func (b *StyleBlock) Name() string {
	if b.Token == nil {
		return ""
	}
	return b.Token.Text
}

// Range covers the block start through the closing brace.
func (b *StyleBlock) Range() Range {
	r := SpanRange(b.Start.Span)
	if b.HasBody {
		r = r.Union(b.BodyRange)
	}
	return r
}

func (*StyleBlock) styleNode() {}

// StyleElement is a `key: value` property. Key, Colon and Value may be nil
// when the property was only partially written.
type StyleElement struct {
	Key   *Token
	Colon *Token
	Value Value
}

// KeyName returns the property key, or "" when missing.
func (e *StyleElement) KeyName() string {
	if e.Key == nil {
		return ""
	}
	return e.Key.Text
}

// Range covers the key through the value.
func (e *StyleElement) Range() Range {
	var r Range
	switch {
	case e.Key != nil:
		r = SpanRange(e.Key.Span)
	case e.Colon != nil:
		r = SpanRange(e.Colon.Span)
	case e.Value != nil:
		return e.Value.Range()
	}
	if e.Colon != nil {
		r = r.Union(SpanRange(e.Colon.Span))
	}
	if e.Value != nil {
		r = r.Union(e.Value.Range())
	}
	return r
}

func (*StyleElement) styleNode() {}

// ElementArgs is a parenthesised argument list.
type ElementArgs struct {
	Items []Arg
	Range Range

	// Closed is false when the closing parenthesis was missing.
	Closed bool
}

// Lookup returns the value of the first argument with the given name.
func (a *ElementArgs) Lookup(name string) (Value, bool) {
	if a == nil {
		return nil, false
	}
	for _, arg := range a.Items {
		if arg.Name != nil && arg.Name.Text == name {
			return arg.Value, arg.Value != nil
		}
	}
	return nil, false
}

// Values returns the argument values in order.
func (a *ElementArgs) Values() []Value {
	if a == nil {
		return nil
	}
	values := make([]Value, 0, len(a.Items))
	for _, arg := range a.Items {
		if arg.Value != nil {
			values = append(values, arg.Value)
		}
	}
	return values
}

// Arg is a single argument, named (`class: card`) or positional (`8px`).
type Arg struct {
	Name  *Token
	Value Value
}

// Integer is an unsigned integer literal.
type Integer struct {
	Token Token
	Value uint64
	Unit  Unit
}

// Range covers the literal and its unit suffix.
func (v *Integer) Range() Range { return SpanRange(v.Token.Span) }

func (*Integer) valueNode() {}

// Float is a floating point literal.
type Float struct {
	Token Token
	Value float64
	Unit  Unit
}

// Range covers the literal and its unit suffix.
func (v *Float) Range() Range { return SpanRange(v.Token.Span) }

func (*Float) valueNode() {}

// Ident is a bare identifier value.
type Ident struct {
	Token Token
}

// Name returns the identifier.
func (v *Ident) Name() string { return v.Token.Text }

// Range covers the identifier.
func (v *Ident) Range() Range { return SpanRange(v.Token.Span) }

func (*Ident) valueNode() {}

// Function is a call such as rgb(1, 2, 3).
type Function struct {
	Ident Token
	Args  *ElementArgs
}

// Name returns the called function name.
func (v *Function) Name() string { return v.Ident.Text }

// Range covers the name through the closing parenthesis.
func (v *Function) Range() Range {
	r := SpanRange(v.Ident.Span)
	if v.Args != nil {
		r = r.Union(v.Args.Range)
	}
	return r
}

func (*Function) valueNode() {}

// Array is a bracketed list of values.
type Array struct {
	Values []Value
	Open   Span
	Close  Span
}

// Range covers the brackets.
func (v *Array) Range() Range { return RangeOf(v.Open, v.Close) }

func (*Array) valueNode() {}

// Tuple is the result of evaluating a builtin; it never appears in source.
type Tuple struct {
	Values []Value
}

// Range is the range of the first element, or the zero range.
func (v *Tuple) Range() Range {
	if len(v.Values) == 0 {
		return Range{}
	}
	return v.Values[0].Range()
}

func (*Tuple) valueNode() {}
