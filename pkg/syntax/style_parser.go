package syntax

// parseStyle parses `style { ... }` or `style name { ... }`. The body uses the
// style grammar instead of the statement grammar.
func (p *parser) parseStyle() *Style {
	st := &Style{Keyword: p.advance()}
	if tok, ok := p.peek(); ok && (tok.Kind == TokIdent || tok.Kind == TokText) {
		name := p.advance()
		st.Token = &name
	}

	open, ok := p.expectOpenBrace()
	if !ok {
		p.skipLine()
		return st
	}
	st.HasBody = true
	st.Body = p.parseStyleBody()
	st.BodyRange = p.closeBlock(open)
	return st
}

func (p *parser) parseStyleBody() []StyleStatement {
	var body []StyleStatement
	for {
		p.skipStyleSeparators()
		tok, ok := p.peek()
		if !ok || tok.Is(OpCloseBrace) {
			return body
		}

		switch {
		case tok.Is(OpOpenBrace):
			body = append(body, p.parseStyleBlock(tok, nil))

		case tok.IsIdent("style") && !p.opAt(1, OpColon):
			start := p.advance()
			var name *Token
			if next, more := p.peek(); more && (next.Kind == TokIdent || next.Kind == TokText) {
				named := p.advance()
				name = &named
			}
			body = append(body, p.parseStyleBlock(start, name))

		case (tok.Kind == TokIdent || tok.Kind == TokText) && p.opAt(1, OpOpenBrace):
			name := p.advance()
			body = append(body, p.parseStyleBlock(name, &name))

		case tok.Kind == TokIdent || tok.Kind == TokText || tok.Is(OpColon):
			body = append(body, p.parseStyleElement())

		default:
			p.advance()
			p.errorf(DiagUnexpectedToken, SpanRange(tok.Span), "unexpected %s in style block", tok.Describe())
		}
	}
}

// parseStyleBlock parses a nested block body. start is the first token of the
// block; when it is `{` the block is anonymous and start is consumed here.
func (p *parser) parseStyleBlock(start Token, name *Token) *StyleBlock {
	block := &StyleBlock{Start: start, Token: name}

	var open Token
	if start.Is(OpOpenBrace) {
		open = p.advance()
	} else {
		var ok bool
		open, ok = p.expectOpenBrace()
		if !ok {
			p.skipStyleProperty()
			return block
		}
	}

	block.HasBody = true
	block.Body = p.parseStyleBody()
	block.BodyRange = p.closeBlock(open)
	return block
}

// parseStyleElement parses `key: value`. Missing parts are reported and the
// partial element is kept.
func (p *parser) parseStyleElement() *StyleElement {
	el := &StyleElement{}
	if tok, _ := p.peek(); tok.Kind == TokIdent || tok.Kind == TokText {
		key := p.advance()
		el.Key = &key
	}

	tok, ok := p.peek()
	if !ok || !tok.Is(OpColon) {
		p.errorf(DiagMissingDelimiter, p.prevRange(), "expected `:` after key, found %s", p.describeNext())
		p.skipStyleProperty()
		return el
	}
	colon := p.advance()
	el.Colon = &colon
	if el.Key == nil {
		p.errorf(DiagUnexpectedToken, SpanRange(colon.Span), "expected property key before `:`")
	}

	here := p.hereRange()
	el.Value = p.parseValue()
	if el.Value == nil {
		p.errorf(DiagInvalidValue, here, "expected value, found %s", p.describeNext())
		p.skipStyleProperty()
	}
	return el
}

// skipStyleProperty skips to the end of the current property.
func (p *parser) skipStyleProperty() {
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind == TokNewline || tok.Is(OpComma) || tok.Is(OpCloseBrace) {
			return
		}
		p.advance()
	}
}

func (p *parser) skipStyleSeparators() {
	for {
		tok, ok := p.peek()
		if !ok || (tok.Kind != TokNewline && !tok.Is(OpComma)) {
			return
		}
		p.advance()
	}
}
