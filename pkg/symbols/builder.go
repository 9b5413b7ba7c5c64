package symbols

import "github.com/yaklabco/gosmf/pkg/syntax"

// Literal keys kept by blocks with a fixed role.
const (
	KeySetup = "setup"
	KeyStyle = "style"
)

// Build walks statements once, depth first, and returns the symbol table with
// the builtin functions registered at the root.
func Build(statements []syntax.Statement) *Table {
	table := NewTable()
	b := builder{table: table}
	b.statements(RootID, statements)
	RegisterBuiltins(table)
	return table
}

type builder struct {
	table *Table
}

func (b *builder) statements(parent ID, statements []syntax.Statement) {
	for _, stmt := range statements {
		b.statement(parent, stmt)
	}
}

func (b *builder) statement(parent ID, stmt syntax.Statement) {
	switch s := stmt.(type) {
	case *syntax.Element:
		key := b.table.NextIndexKey(parent)
		if s.Name() == KeySetup {
			key = KeySetup
		}
		tok := s.Token
		sym := b.table.Insert(parent, Symbol{
			Key:      key,
			Name:     s.Name(),
			Kind:     NodeKind{Args: s.Args},
			Token:    &tok,
			Range:    s.Range(),
			HasRange: true,
		})
		b.statements(sym.ID, s.Body)

	case *syntax.Style:
		b.style(parent, s)

	case *syntax.Use:
		tok := s.Token
		b.table.Insert(parent, Symbol{
			Key:      b.table.NextIndexKey(parent),
			Name:     "use",
			Kind:     UseKind{Path: s.PathNames()},
			Token:    &tok,
			Range:    s.Range(),
			HasRange: true,
		})

	case *syntax.Text:
		tok := s.Token
		b.table.Insert(parent, Symbol{
			Key:      b.table.NextIndexKey(parent),
			Name:     "text",
			Kind:     TextKind{Value: s.Value()},
			Token:    &tok,
			Range:    s.Range(),
			HasRange: true,
		})
	}
}

// style inserts a top-level style statement. Named blocks are keyed by their
// name. Anonymous blocks share the literal "style" key; a second anonymous
// block in the same scope extends the first.
func (b *builder) style(parent ID, s *syntax.Style) {
	if s.Token != nil {
		tok := *s.Token
		b.styleBlock(parent, s.Name(), &tok, s.Body, s.Range())
		return
	}

	if existing, ok := b.table.Child(parent, KeyStyle); ok && existing.IsAnonymousStyle() {
		b.styleBody(existing, s.Body)
		return
	}
	tok := s.Keyword
	b.styleBlock(parent, KeyStyle, &tok, s.Body, s.Range())
}

func (b *builder) styleBlock(parent ID, name string, tok *syntax.Token, body []syntax.StyleStatement, r syntax.Range) {
	sym := b.table.Insert(parent, Symbol{
		Key:      name,
		Name:     name,
		Kind:     StyleKind{Properties: NewProperties()},
		Token:    tok,
		Range:    r,
		HasRange: true,
	})
	b.styleBody(sym, body)
}

// styleBody records direct leaf properties on sym. Named nested blocks become
// child style symbols; anonymous nested blocks contribute their leaves to sym.
func (b *builder) styleBody(sym *Symbol, body []syntax.StyleStatement) {
	props := sym.Kind.(StyleKind).Properties
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *syntax.StyleElement:
			if s.Key == nil || s.Value == nil {
				continue
			}
			props.Set(Property{Key: s.KeyName(), Value: s.Value, Element: s})

		case *syntax.StyleBlock:
			if s.Token == nil {
				b.styleBody(sym, s.Body)
				continue
			}
			tok := *s.Token
			b.styleBlock(sym.ID, s.Name(), &tok, s.Body, s.Range())
		}
	}
}
