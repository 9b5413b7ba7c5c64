package syntax

import (
	"strconv"
	"strings"
)

// DefaultIndent is the indentation width used by Format.
const DefaultIndent = 4

// FormatOptions controls canonical output.
type FormatOptions struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// Format re-emits statements as canonical source with default options.
func Format(statements []Statement) string {
	return FormatWith(statements, FormatOptions{Indent: DefaultIndent})
}

// FormatWith re-emits statements as canonical source.
func FormatWith(statements []Statement, opts FormatOptions) string {
	if opts.Indent <= 0 {
		opts.Indent = DefaultIndent
	}
	f := &formatter{unit: strings.Repeat(" ", opts.Indent)}
	for i, stmt := range statements {
		if i > 0 && !(isUse(stmt) && isUse(statements[i-1])) {
			f.buf.WriteByte('\n')
		}
		f.statement(stmt, 0)
	}
	return f.buf.String()
}

// FormatValue renders a single value.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

type formatter struct {
	buf  strings.Builder
	unit string
}

func (f *formatter) indent(depth int) {
	for range depth {
		f.buf.WriteString(f.unit)
	}
}

func (f *formatter) statement(stmt Statement, depth int) {
	f.indent(depth)
	switch s := stmt.(type) {
	case *Element:
		f.buf.WriteString(s.Name())
		if s.Args != nil {
			writeArgs(&f.buf, s.Args)
		}
		f.buf.WriteByte(' ')
		if len(s.Body) == 0 {
			f.buf.WriteString("{}\n")
			return
		}
		f.buf.WriteString("{\n")
		for _, child := range s.Body {
			f.statement(child, depth+1)
		}
		f.indent(depth)
		f.buf.WriteString("}\n")

	case *Style:
		f.buf.WriteString("style ")
		if s.Token != nil {
			f.buf.WriteString(s.Token.Text)
			f.buf.WriteByte(' ')
		}
		f.styleBody(s.Body, depth)

	case *Use:
		f.buf.WriteString("use ")
		f.buf.WriteString(strings.Join(s.PathNames(), "."))
		f.buf.WriteByte('\n')

	case *Text:
		f.buf.WriteString(formatText(s.Token))
		f.buf.WriteByte('\n')
	}
}

func (f *formatter) styleBody(body []StyleStatement, depth int) {
	if len(body) == 0 {
		f.buf.WriteString("{}\n")
		return
	}
	f.buf.WriteString("{\n")
	for _, stmt := range body {
		f.indent(depth + 1)
		switch s := stmt.(type) {
		case *StyleBlock:
			if s.Token != nil {
				f.buf.WriteString(s.Token.Text)
				f.buf.WriteByte(' ')
			}
			f.styleBody(s.Body, depth+1)
		case *StyleElement:
			f.buf.WriteString(s.KeyName())
			f.buf.WriteString(": ")
			if s.Value != nil {
				writeValue(&f.buf, s.Value)
			}
			f.buf.WriteByte('\n')
		}
	}
	f.indent(depth)
	f.buf.WriteString("}\n")
}

// formatText re-emits a text run in the form it was lexed from. Absorbed
// runs are written verbatim since they need not be valid titles.
func formatText(tok Token) string {
	switch {
	case tok.Quoted:
		return `"` + tok.Text + `"`
	case tok.Title:
		return ": " + tok.Text
	default:
		return tok.Text
	}
}

func writeArgs(b *strings.Builder, args *ElementArgs) {
	b.WriteByte('(')
	for i, arg := range args.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		if arg.Name != nil {
			b.WriteString(arg.Name.Text)
			b.WriteString(": ")
		}
		if arg.Value != nil {
			writeValue(b, arg.Value)
		}
	}
	b.WriteByte(')')
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case *Integer:
		b.WriteString(strconv.FormatUint(val.Value, 10))
		b.WriteString(val.Unit.Suffix())
	case *Float:
		text := strconv.FormatFloat(val.Value, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
		b.WriteString(text)
		b.WriteString(val.Unit.Suffix())
	case *Ident:
		b.WriteString(val.Name())
	case *Function:
		b.WriteString(val.Name())
		if val.Args != nil {
			writeArgs(b, val.Args)
		} else {
			b.WriteString("()")
		}
	case *Array:
		b.WriteByte('[')
		for i, item := range val.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case *Tuple:
		b.WriteByte('(')
		for i, item := range val.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(')')
	}
}

func isUse(stmt Statement) bool {
	_, ok := stmt.(*Use)
	return ok
}
