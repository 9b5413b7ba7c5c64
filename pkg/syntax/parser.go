package syntax

import "fmt"

// Parse consumes a token stream and returns the statement tree. It never
// aborts: syntax problems are returned as diagnostics and the parser keeps
// whatever partial nodes it could build.
func Parse(tokens []Token) ([]Statement, []Diagnostic) {
	p := newParser(tokens)
	statements := p.parseStatements(false)
	return statements, p.diags
}

type parser struct {
	toks  []Token
	pos   int
	diags []Diagnostic
}

func newParser(tokens []Token) *parser {
	toks := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != TokWhitespace {
			toks = append(toks, tok)
		}
	}
	return &parser{toks: toks}
}

// parseStatements parses until end of input, or until a closing brace when nested.
func (p *parser) parseStatements(nested bool) []Statement {
	var statements []Statement
	for {
		p.skipNewlines()
		tok, ok := p.peek()
		if !ok {
			return statements
		}
		if tok.Is(OpCloseBrace) {
			if nested {
				return statements
			}
			p.advance()
			p.errorf(DiagUnexpectedToken, SpanRange(tok.Span), "unmatched %s", tok.Describe())
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
}

func (p *parser) parseStatement() Statement {
	tok, _ := p.peek()
	switch {
	case tok.IsIdent("use") && p.kindAt(1, TokIdent):
		return p.parseUse()

	case tok.IsIdent("style"):
		return p.parseStyle()

	case tok.Kind == TokIdent || tok.Kind == TokText:
		if p.opAt(1, OpOpenParen) || p.opAt(1, OpOpenBrace) {
			return p.parseElement()
		}
		p.advance()
		if tok.Kind == TokText {
			return &Text{Token: tok}
		}
		p.errorf(DiagMissingDelimiter, SpanRange(tok.Span), "expected `{` after %s", tok.Describe())
		p.skipLine()
		return nil

	default:
		p.advance()
		p.errorf(DiagUnexpectedToken, SpanRange(tok.Span), "unexpected %s", tok.Describe())
		return nil
	}
}

func (p *parser) parseElement() *Element {
	name := p.advance()
	el := &Element{Token: name}
	if p.peekIs(OpOpenParen) {
		el.Args = p.parseArgs()
	}

	open, ok := p.expectOpenBrace()
	if !ok {
		return el
	}
	el.HasBody = true
	el.Body = p.parseStatements(true)
	el.BodyRange = p.closeBlock(open)
	return el
}

func (p *parser) parseUse() *Use {
	use := &Use{Token: p.advance()}
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokIdent {
			p.errorf(DiagUnexpectedToken, p.hereRange(), "expected identifier in use path, found %s", p.describeNext())
			return use
		}
		use.Path = append(use.Path, p.advance())
		if !p.peekIs(OpDot) {
			return use
		}
		p.advance()
	}
}

// parseArgs parses a parenthesised argument list. The current token must be `(`.
func (p *parser) parseArgs() *ElementArgs {
	open := p.advance()
	args := &ElementArgs{}
	last := open.Span
	afterComma := false

	for {
		p.skipNewlines()
		tok, ok := p.peek()
		if !ok || tok.Is(OpOpenBrace) || tok.Is(OpCloseBrace) {
			break
		}
		if tok.Is(OpCloseParen) {
			p.advance()
			if afterComma {
				p.errorf(DiagMissingComma, SpanRange(last), "trailing `,` in argument list")
			}
			args.Closed = true
			last = tok.Span
			break
		}
		if tok.Is(OpComma) {
			p.advance()
			p.errorf(DiagMissingComma, SpanRange(tok.Span), "empty argument before `,`")
			last = tok.Span
			continue
		}

		arg, ok := p.parseArg()
		if arg.Name != nil || ok {
			args.Items = append(args.Items, arg)
		}
		if !ok {
			p.recoverArg()
		}
		if prev, has := p.prev(); has {
			last = prev.Span
		}

		afterComma = false
		p.skipNewlines()
		next, more := p.peek()
		switch {
		case !more, next.Is(OpCloseParen), next.Is(OpOpenBrace), next.Is(OpCloseBrace):
		case next.Is(OpComma):
			p.advance()
			last = next.Span
			afterComma = true
		default:
			p.errorf(DiagMissingComma, SpanRange(next.Span), "expected `,` between arguments, found %s", next.Describe())
		}
	}

	if !args.Closed {
		p.errorf(DiagInvalidArguments, RangeOf(open.Span, last), "unable to parse argument list: missing `)`")
	}
	args.Range = RangeOf(open.Span, last)
	return args
}

// parseArg parses `name: value` or a positional value. ok is false when no
// value could be parsed; a named argument is still returned in that case.
func (p *parser) parseArg() (Arg, bool) {
	var arg Arg
	tok, _ := p.peek()
	if tok.Kind == TokIdent && p.opAt(1, OpColon) {
		name := p.advance()
		p.advance()
		arg.Name = &name
		p.skipNewlines()
	}

	here := p.hereRange()
	arg.Value = p.parseValue()
	if arg.Value == nil {
		p.errorf(DiagInvalidValue, here, "expected value, found %s", p.describeNext())
		return arg, false
	}
	return arg, true
}

// recoverArg skips to the next argument separator or closing delimiter.
func (p *parser) recoverArg() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Is(OpComma) || tok.Is(OpCloseParen) || tok.Is(OpOpenBrace) || tok.Is(OpCloseBrace) {
			return
		}
		p.advance()
	}
}

// parseValue parses a single value, or returns nil without consuming input.
func (p *parser) parseValue() Value {
	tok, ok := p.peek()
	if !ok {
		return nil
	}
	switch {
	case tok.Kind == TokInteger:
		p.advance()
		return &Integer{Token: tok, Value: tok.Int, Unit: tok.Unit}
	case tok.Kind == TokFloat:
		p.advance()
		return &Float{Token: tok, Value: tok.Float, Unit: tok.Unit}
	case tok.Is(OpOpenSquare):
		return p.parseArray()
	case tok.Kind == TokIdent:
		p.advance()
		if p.peekIs(OpOpenParen) {
			return &Function{Ident: tok, Args: p.parseArgs()}
		}
		return &Ident{Token: tok}
	default:
		return nil
	}
}

func (p *parser) parseArray() *Array {
	open := p.advance()
	arr := &Array{Open: open.Span, Close: open.Span}
	for {
		p.skipNewlines()
		tok, ok := p.peek()
		if !ok || tok.Is(OpCloseParen) || tok.Is(OpOpenBrace) || tok.Is(OpCloseBrace) {
			p.errorf(DiagMissingDelimiter, RangeOf(open.Span, arr.Close), "missing `]` to close array")
			return arr
		}
		if tok.Is(OpCloseSquare) {
			p.advance()
			arr.Close = tok.Span
			return arr
		}

		value := p.parseValue()
		if value == nil {
			p.advance()
			p.errorf(DiagInvalidValue, SpanRange(tok.Span), "unexpected %s in array", tok.Describe())
			continue
		}
		arr.Values = append(arr.Values, value)
		if prev, has := p.prev(); has {
			arr.Close = prev.Span
		}

		p.skipNewlines()
		next, more := p.peek()
		switch {
		case more && next.Is(OpComma):
			p.advance()
		case more && !next.Is(OpCloseSquare) && (next.Kind == TokIdent || next.Kind == TokInteger ||
			next.Kind == TokFloat || next.Is(OpOpenSquare)):
			p.errorf(DiagMissingComma, SpanRange(next.Span), "expected `,` between array values")
		}
	}
}

// expectOpenBrace consumes an opening brace, allowing line breaks before it.
func (p *parser) expectOpenBrace() (Token, bool) {
	save := p.pos
	p.skipNewlines()
	if tok, ok := p.peek(); ok && tok.Is(OpOpenBrace) {
		return p.advance(), true
	}
	p.pos = save
	p.errorf(DiagMissingDelimiter, p.prevRange(), "expected `{`, found %s", p.describeNext())
	return Token{}, false
}

// closeBlock consumes the closing brace for open and returns the body range.
func (p *parser) closeBlock(open Token) Range {
	if tok, ok := p.peek(); ok && tok.Is(OpCloseBrace) {
		p.advance()
		return RangeOf(open.Span, tok.Span)
	}
	end := open.Span
	if prev, ok := p.prev(); ok {
		end = prev.Span
	}
	p.errorf(DiagMissingDelimiter, SpanRange(open.Span), "missing `}` to close block")
	return RangeOf(open.Span, end)
}

func (p *parser) skipLine() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == TokNewline || tok.Is(OpCloseBrace) {
			return
		}
		p.advance()
	}
}

func (p *parser) skipNewlines() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokNewline {
			return
		}
		p.pos++
	}
}

func (p *parser) peek() (Token, bool) {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) (Token, bool) {
	if p.pos+n >= len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos+n], true
}

func (p *parser) peekIs(op Operator) bool {
	return p.opAt(0, op)
}

func (p *parser) opAt(n int, op Operator) bool {
	tok, ok := p.peekAt(n)
	return ok && tok.Is(op)
}

func (p *parser) kindAt(n int, kind TokenKind) bool {
	tok, ok := p.peekAt(n)
	return ok && tok.Kind == kind
}

func (p *parser) advance() Token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *parser) prev() (Token, bool) {
	if p.pos == 0 || p.pos > len(p.toks) {
		return Token{}, false
	}
	return p.toks[p.pos-1], true
}

// hereRange is the range of the next token, or of the last token at end of input.
func (p *parser) hereRange() Range {
	if tok, ok := p.peek(); ok {
		return SpanRange(tok.Span)
	}
	return p.prevRange()
}

func (p *parser) prevRange() Range {
	if tok, ok := p.prev(); ok {
		return SpanRange(tok.Span)
	}
	return Range{}
}

func (p *parser) describeNext() string {
	if tok, ok := p.peek(); ok {
		return tok.Describe()
	}
	return "end of input"
}

func (p *parser) errorf(kind DiagnosticKind, r Range, format string, args ...any) {
	p.diags = append(p.diags, Diagnostic{
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Range:    r,
		HasRange: len(p.toks) > 0,
	})
}
