package lsp

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Hover describes the identifier under pos: a style property with its
// evaluated value, or the symbol the name resolves to.
func Hover(doc *Document, pos protocol.Position) (*protocol.Hover, bool) {
	block, query, ok := doc.locate(pos)
	if !ok {
		return nil, false
	}
	tok, ok := queryToken(block, query)
	if !ok {
		return nil, false
	}
	rng := doc.rangeOf(block, syntax.SpanRange(tok.Span))

	if prop, isProp := block.Module.StyleElementAt(query); isProp && prop.Key != nil &&
		prop.Key.Span.TokenIndex == tok.Span.TokenIndex {
		return markdownHover(propertyDoc(block, query, prop.KeyName()), rng), true
	}

	sym, ok := symbolAt(block, query, tok)
	if !ok {
		return nil, false
	}
	return markdownHover(symbolDoc(block.Module.Symbols, sym), rng), true
}

// Definition returns the location of the symbol the name under pos resolves
// to. Builtins have no location.
func Definition(doc *Document, pos protocol.Position) (protocol.Location, bool) {
	block, query, ok := doc.locate(pos)
	if !ok {
		return protocol.Location{}, false
	}
	tok, ok := queryToken(block, query)
	if !ok {
		return protocol.Location{}, false
	}
	sym, ok := symbolAt(block, query, tok)
	if !ok || !sym.HasRange {
		return protocol.Location{}, false
	}
	return protocol.Location{URI: doc.URI, Range: doc.rangeOf(block, sym.Range)}, true
}

// symbolAt resolves tok from the scope enclosing query. A segment of a use
// path resolves to the symbol that path prefix names.
func symbolAt(block *Block, query syntax.Span, tok syntax.Token) (*symbols.Symbol, bool) {
	table := block.Module.Symbols

	if stmt, ok := block.Module.StatementAt(query); ok {
		if use, isUse := stmt.(*syntax.Use); isUse {
			for idx, segment := range use.Path {
				if segment.Span.TokenIndex == tok.Span.TokenIndex {
					return table.ResolveChain(use.PathNames()[:idx+1])
				}
			}
		}
	}

	scope := block.Module.ScopeAt(query)
	if sym, ok := table.Resolve(scope.ID, tok.Text); ok {
		return sym, true
	}
	// A block name resolves to the block itself.
	if scope.Token != nil && scope.Token.Span.TokenIndex == tok.Span.TokenIndex {
		return scope, true
	}
	return nil, false
}

func propertyDoc(block *Block, query syntax.Span, key string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "```smf\n%s\n```", key)

	scope := block.Module.ScopeAt(query)
	if _, isStyle := scope.Kind.(symbols.StyleKind); isStyle {
		value := style.FromSymbol(block.Module.Symbols, scope, key)
		fmt.Fprintf(&b, "\n\nvalue: `%s`", style.Describe(value))
	}
	if style.IsInherited(key) {
		b.WriteString("\n\nInherited from the parent element when unset.")
	}
	return b.String()
}

func symbolDoc(table *symbols.Table, sym *symbols.Symbol) string {
	var b strings.Builder
	switch kind := sym.Kind.(type) {
	case symbols.FunctionKind:
		fmt.Fprintf(&b, "```smf\n%s\n```\n\nbuiltin function", symbols.Signature(sym.Key, kind))
	case symbols.StyleKind:
		fmt.Fprintf(&b, "```smf\nstyle %s\n```", sym.Key)
		for _, prop := range kind.Properties.All() {
			fmt.Fprintf(&b, "\n- `%s: %s`", prop.Key, syntax.FormatValue(prop.Value))
		}
	case symbols.UseKind:
		fmt.Fprintf(&b, "```smf\nuse %s\n```", strings.Join(kind.Path, "."))
	case symbols.TextKind:
		fmt.Fprintf(&b, "```smf\n%q\n```", kind.Value)
	default:
		fmt.Fprintf(&b, "```smf\n%s\n```\n\n%s", sym.Name, symbols.KindName(sym.Kind))
	}
	if path := table.Path(sym.ID); len(path) > 0 {
		fmt.Fprintf(&b, "\n\npath: `%s`", strings.Join(path, "."))
	}
	return b.String()
}

func markdownHover(value string, rng protocol.Range) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: value,
		},
		Range: &rng,
	}
}
