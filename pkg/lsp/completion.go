package lsp

import (
	"sort"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/symbols"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// statementKeywords start statements anywhere in a body.
//
//nolint:gochecknoglobals // Read-only lookup table.
var statementKeywords = []protocol.CompletionItem{
	completionItem("use", protocol.CompletionItemKindKeyword, "Import a scope by root-relative path"),
	completionItem("style", protocol.CompletionItemKindKeyword, "Style block, named or anonymous"),
	completionItem("view", protocol.CompletionItemKindKeyword, "Displayed element"),
	completionItem("setup", protocol.CompletionItemKindKeyword, "Non-displayed configuration element"),
}

func completionItem(label string, kind protocol.CompletionItemKind, detail string) protocol.CompletionItem {
	return protocol.CompletionItem{
		Label:  label,
		Kind:   &kind,
		Detail: &detail,
	}
}

// Completions lists what can be written at pos: style property keys inside
// style blocks, statement keywords elsewhere, and every name visible from the
// enclosing scope.
func Completions(doc *Document, pos protocol.Position) []protocol.CompletionItem {
	block, query, ok := doc.locate(pos)
	if !ok {
		return nil
	}
	module := block.Module
	scope := module.ScopeAt(query)

	var items []protocol.CompletionItem
	if _, inStyle := scope.Kind.(symbols.StyleKind); inStyle {
		for _, key := range style.Keys {
			detail := "style property"
			if style.IsInherited(key) {
				detail = "style property, inherited"
			}
			items = append(items, completionItem(key, protocol.CompletionItemKindProperty, detail))
		}
	} else {
		items = append(items, statementKeywords...)
	}

	for _, sym := range module.Symbols.Visible(scope.ID) {
		items = append(items, symbolCompletion(sym))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
	return items
}

func symbolCompletion(sym *symbols.Symbol) protocol.CompletionItem {
	switch kind := sym.Kind.(type) {
	case symbols.FunctionKind:
		return completionItem(sym.Key, protocol.CompletionItemKindFunction, symbols.Signature(sym.Key, kind))
	case symbols.StyleKind:
		return completionItem(sym.Key, protocol.CompletionItemKindClass, "style")
	case symbols.UseKind:
		return completionItem(sym.Key, protocol.CompletionItemKindReference, "use "+strings.Join(kind.Path, "."))
	case symbols.TextKind:
		return completionItem(sym.Key, protocol.CompletionItemKindText, kind.Value)
	default:
		return completionItem(sym.Key, protocol.CompletionItemKindModule, symbols.KindName(sym.Kind))
	}
}

// queryToken returns the identifier under pos, if any.
func queryToken(block *Block, query syntax.Span) (syntax.Token, bool) {
	tok, ok := block.Module.TokenAt(query)
	if ok && tok.Kind == syntax.TokIdent {
		return tok, true
	}
	// The cursor sits just past an identifier while typing.
	if query.Offset > 0 {
		prev := query
		prev.Offset--
		tok, ok = block.Module.TokenAt(prev)
		if ok && tok.Kind == syntax.TokIdent {
			return tok, true
		}
	}
	return syntax.Token{}, false
}
