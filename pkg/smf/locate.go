package smf

import (
	"sort"

	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Position builds a query span for a 0-based line and byte column.
func (m *Module) Position(line, col int) syntax.Span {
	offset, _ := m.Offset(line, col)
	return syntax.Span{Line: line, Column: col, Offset: offset}
}

// StatementAt returns the innermost statement whose range contains pos,
// descending through element bodies.
func (m *Module) StatementAt(pos syntax.Span) (syntax.Statement, bool) {
	var found syntax.Statement
	list := m.Statements

descend:
	for {
		for _, stmt := range list {
			if !stmt.Range().Contains(pos) {
				continue
			}
			found = stmt
			if el, ok := stmt.(*syntax.Element); ok {
				list = el.Body
				continue descend
			}
			break descend
		}
		break
	}
	return found, found != nil
}

// StyleElementAt returns the style property whose range contains pos.
func (m *Module) StyleElementAt(pos syntax.Span) (*syntax.StyleElement, bool) {
	stmt, ok := m.StatementAt(pos)
	if !ok {
		return nil, false
	}
	style, ok := stmt.(*syntax.Style)
	if !ok {
		return nil, false
	}

	var found *syntax.StyleElement
	_ = syntax.WalkStyle(style.Body, func(node syntax.StyleStatement) error {
		if el, isElement := node.(*syntax.StyleElement); isElement && el.Range().Contains(pos) {
			found = el
		}
		return nil
	})
	return found, found != nil
}

// TokenAt returns the token covering the byte offset of pos.
func (m *Module) TokenAt(pos syntax.Span) (syntax.Token, bool) {
	idx := sort.Search(len(m.Tokens), func(i int) bool {
		return m.Tokens[i].Span.End() > pos.Offset
	})
	if idx >= len(m.Tokens) || m.Tokens[idx].Span.Offset > pos.Offset {
		return syntax.Token{}, false
	}
	return m.Tokens[idx], true
}

// ScopeAt returns the innermost element or style symbol containing pos, or
// the root when pos is outside every block.
func (m *Module) ScopeAt(pos syntax.Span) *symbols.Symbol {
	table := m.Symbols
	scope := table.Root()

descend:
	for {
		for _, child := range table.Children(scope.ID) {
			if !child.HasRange || !child.Range.Contains(pos) {
				continue
			}
			switch child.Kind.(type) {
			case symbols.NodeKind, symbols.StyleKind:
				scope = child
				continue descend
			}
		}
		return scope
	}
}
