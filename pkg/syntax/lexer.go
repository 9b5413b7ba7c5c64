package syntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// titlePunctuation lists the non-alphanumeric runes allowed in a captured title line.
const titlePunctuation = " ,'\"!@#$%^&*()[]?/;:\\.<>-_+="

// Lex converts source text into spanned tokens. It never fails: input that
// cannot be classified is absorbed into a text run ending at the next line
// break. Whitespace and newline tokens are retained.
func Lex(src string) []Token {
	lx := &lexer{src: src}
	lx.run()
	return lx.tokens
}

type titleCapture struct {
	tokenIndex int
	bodyStart  int
}

type lexer struct {
	src    string
	tokens []Token
	line   int
	column int

	capture *titleCapture
}

func (lx *lexer) run() {
	start := 0
	for start < len(lx.src) {
		end := lx.runEnd(start)
		for {
			tok, ok := lx.classify(lx.src[start:end], end)
			if ok {
				end = lx.accept(tok, start, end)
				break
			}
			if end >= len(lx.src) {
				lx.push(Token{Kind: TokText, Text: lx.src[start:end]}, start, end)
				break
			}
			_, size := utf8.DecodeRuneInString(lx.src[end:])
			end += size
		}
		start = end
	}
	lx.closeCapture(len(lx.src))
}

// runEnd returns the end of the first window classify should see at start.
// Identifier, number and space runs are skipped in one pass since classify
// would only keep widening through them.
func (lx *lexer) runEnd(start int) int {
	first, size := utf8.DecodeRuneInString(lx.src[start:])
	end := start + size

	var more func(rune) bool
	switch {
	case isHorizontalSpace(first):
		more = isHorizontalSpace
	case unicode.IsLetter(first) || first == '_':
		more = isIdentRune
	case isDigit(first):
		dots := 0
		more = func(r rune) bool {
			if r == '.' {
				dots++
				return dots == 1
			}
			return isDigit(r)
		}
	default:
		return end
	}

	for end < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[end:])
		if !more(r) {
			break
		}
		end += size
	}
	return end
}

// classify tries to finalize window as a token given the rune that follows it.
func (lx *lexer) classify(window string, end int) (Token, bool) {
	next, hasNext := lx.peekRune(end)

	if len(window) <= utf8.UTFMax && utf8.RuneCountInString(window) == 1 {
		r, _ := utf8.DecodeRuneInString(window)
		if op := operatorFor(r); op != OpNone {
			return Token{Kind: TokOperator, Operator: op, Text: window}, true
		}
		if r == '\n' || r == '\r' {
			return Token{Kind: TokNewline, Text: window}, true
		}
	}

	if isHorizontalSpaceRun(window) {
		if hasNext && isHorizontalSpace(next) {
			return Token{}, false
		}
		return Token{Kind: TokWhitespace, Text: window}, true
	}

	if window[0] == '"' {
		if len(window) >= 2 && strings.HasSuffix(window, "\"") {
			return Token{Kind: TokText, Text: window[1 : len(window)-1], Quoted: true}, true
		}
		if !hasNext || isLineBreak(next) {
			return Token{Kind: TokText, Text: window}, true
		}
		return Token{}, false
	}

	if isNumeric(window) {
		if hasNext && (isDigit(next) || next == '.') {
			return Token{}, false
		}
		return numberToken(window), true
	}

	if isIdentifier(window) {
		if hasNext && isIdentRune(next) {
			return Token{}, false
		}
		return Token{Kind: TokIdent, Text: window}, true
	}

	if !hasNext || isLineBreak(next) {
		return Token{Kind: TokText, Text: window}, true
	}
	return Token{}, false
}

// accept records tok and returns the offset where scanning resumes.
func (lx *lexer) accept(tok Token, start, end int) int {
	switch tok.Kind {
	case TokNewline:
		if lx.src[start] == '\r' && end < len(lx.src) && lx.src[end] == '\n' {
			end++
			tok.Text = "\r\n"
		}
		lx.closeCapture(start)
		lx.push(tok, start, end)
		return end

	case TokInteger, TokFloat:
		if strings.HasPrefix(lx.src[end:], "px") && !lx.identContinues(end+2) {
			tok.Unit = UnitPixel
			end += 2
		}
		lx.push(tok, start, end)
		return end

	case TokOperator:
		if tok.Operator == OpColon && lx.capture == nil && lx.startsLine() {
			lx.capture = &titleCapture{tokenIndex: len(lx.tokens), bodyStart: end}
		}
		lx.push(tok, start, end)
		return end

	default:
		lx.push(tok, start, end)
		return end
	}
}

func (lx *lexer) push(tok Token, start, end int) {
	tok.Span = Span{
		Line:       lx.line,
		Column:     lx.column,
		Length:     end - start,
		TokenIndex: len(lx.tokens),
		Offset:     start,
	}
	lx.tokens = append(lx.tokens, tok)

	if tok.Kind == TokNewline {
		lx.line++
		lx.column = 0
		return
	}
	lx.column += end - start
}

// closeCapture ends an open title capture at offset stop. A valid title
// replaces every token since the colon with a single text token.
func (lx *lexer) closeCapture(stop int) {
	capture := lx.capture
	lx.capture = nil
	if capture == nil || capture.tokenIndex >= len(lx.tokens) {
		return
	}

	body := lx.src[capture.bodyStart:stop]
	title := strings.TrimSpace(body)
	if title == "" || !isTitleText(body) {
		return
	}

	colon := lx.tokens[capture.tokenIndex]
	lx.tokens = lx.tokens[:capture.tokenIndex]
	lx.tokens = append(lx.tokens, Token{
		Kind:  TokText,
		Text:  title,
		Title: true,
		Span: Span{
			Line:       colon.Span.Line,
			Column:     colon.Span.Column,
			Length:     stop - colon.Span.Offset,
			TokenIndex: capture.tokenIndex,
			Offset:     colon.Span.Offset,
		},
	})
}

// startsLine reports whether no non-whitespace token precedes the current
// position on this line.
func (lx *lexer) startsLine() bool {
	for i := len(lx.tokens) - 1; i >= 0; i-- {
		tok := lx.tokens[i]
		switch tok.Kind {
		case TokWhitespace:
			continue
		case TokNewline:
			return true
		default:
			return false
		}
	}
	return true
}

func (lx *lexer) identContinues(offset int) bool {
	r, ok := lx.peekRune(offset)
	return ok && isIdentRune(r)
}

func (lx *lexer) peekRune(offset int) (rune, bool) {
	if offset >= len(lx.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(lx.src[offset:])
	return r, true
}

func numberToken(lexeme string) Token {
	if strings.Contains(lexeme, ".") {
		value, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			value = 0
		}
		return Token{Kind: TokFloat, Text: lexeme, Float: value}
	}
	value, err := strconv.ParseUint(lexeme, 10, 64)
	if err != nil {
		value = 0
	}
	return Token{Kind: TokInteger, Text: lexeme, Int: value}
}

func operatorFor(r rune) Operator {
	switch r {
	case '(':
		return OpOpenParen
	case ')':
		return OpCloseParen
	case '{':
		return OpOpenBrace
	case '}':
		return OpCloseBrace
	case '[':
		return OpOpenSquare
	case ']':
		return OpCloseSquare
	case ':':
		return OpColon
	case ',':
		return OpComma
	case '.':
		return OpDot
	default:
		return OpNone
	}
}

func isNumeric(s string) bool {
	dots := 0
	digits := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case isDigit(r):
			digits++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !(unicode.IsLetter(r) || r == '_') {
			return false
		}
		if !isIdentRune(r) {
			return false
		}
	}
	return s != ""
}

func isTitleText(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if !strings.ContainsRune(titlePunctuation, r) {
			return false
		}
	}
	return true
}

func isHorizontalSpaceRun(s string) bool {
	for _, r := range s {
		if !isHorizontalSpace(r) {
			return false
		}
	}
	return s != ""
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLineBreak(r rune) bool { return r == '\n' || r == '\r' }

func isHorizontalSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f' || r == '\v'
}
