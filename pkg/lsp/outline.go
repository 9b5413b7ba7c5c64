package lsp

import (
	"strconv"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// maxOutlineText bounds text leaf names in the outline.
const maxOutlineText = 32

// Outline returns the symbol tree of every block as document symbols.
// Builtins are omitted.
func Outline(doc *Document) []protocol.DocumentSymbol {
	out := []protocol.DocumentSymbol{}
	for _, block := range doc.Blocks {
		table := block.Module.Symbols
		out = append(out, outlineChildren(doc, block, table, table.Root().ID)...)
	}
	return out
}

func outlineChildren(doc *Document, block *Block, table *symbols.Table, parent symbols.ID) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, sym := range table.Children(parent) {
		if !sym.HasRange {
			continue
		}

		rng := doc.rangeOf(block, sym.Range)
		selection := rng
		if sym.Token != nil {
			selection = doc.rangeOf(block, syntax.SpanRange(sym.Token.Span))
		}
		detail := symbols.KindName(sym.Kind)

		out = append(out, protocol.DocumentSymbol{
			Name:           outlineName(sym),
			Detail:         &detail,
			Kind:           outlineKind(sym.Kind),
			Range:          rng,
			SelectionRange: selection,
			Children:       outlineChildren(doc, block, table, sym.ID),
		})
	}
	return out
}

func outlineName(sym *symbols.Symbol) string {
	switch kind := sym.Kind.(type) {
	case symbols.TextKind:
		text := kind.Value
		if len([]rune(text)) > maxOutlineText {
			text = string([]rune(text)[:maxOutlineText]) + "…"
		}
		return strconv.Quote(text)
	case symbols.UseKind:
		return "use " + strings.Join(kind.Path, ".")
	case symbols.StyleKind:
		if sym.IsAnonymousStyle() {
			return "style"
		}
		return "style " + sym.Key
	}
	if sym.IsIndexed() && sym.Name != "" {
		return sym.Name
	}
	return sym.Key
}

func outlineKind(kind symbols.Kind) protocol.SymbolKind {
	switch kind.(type) {
	case symbols.StyleKind:
		return protocol.SymbolKindClass
	case symbols.TextKind:
		return protocol.SymbolKindString
	case symbols.UseKind:
		return protocol.SymbolKindNamespace
	default:
		return protocol.SymbolKindObject
	}
}
