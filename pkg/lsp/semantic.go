package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Semantic token types, in legend order.
const (
	tokenNamespace = iota
	tokenType
	tokenClass
	tokenFunction
	tokenVariable
	tokenParameter
	tokenProperty
	tokenString
	tokenNumber
	tokenOperator
	tokenKeyword
)

// semanticTokenTypes is the legend announced to clients.
//
//nolint:gochecknoglobals // Read-only lookup table.
var semanticTokenTypes = []string{
	string(protocol.SemanticTokenTypeNamespace),
	string(protocol.SemanticTokenTypeType),
	string(protocol.SemanticTokenTypeClass),
	string(protocol.SemanticTokenTypeFunction),
	string(protocol.SemanticTokenTypeVariable),
	string(protocol.SemanticTokenTypeParameter),
	string(protocol.SemanticTokenTypeProperty),
	string(protocol.SemanticTokenTypeString),
	string(protocol.SemanticTokenTypeNumber),
	string(protocol.SemanticTokenTypeOperator),
	string(protocol.SemanticTokenTypeKeyword),
}

// SemanticTokens encodes every classified token of doc in the relative
// five-integer form of the protocol.
func SemanticTokens(doc *Document) []protocol.UInteger {
	var (
		data     []protocol.UInteger
		prevLine int
		prevChar int
	)

	for _, block := range doc.Blocks {
		types := classify(block.Module)
		for _, tok := range block.Module.Tokens {
			typ, ok := types[tok.Span.TokenIndex]
			if !ok && tok.Kind == syntax.TokOperator {
				typ, ok = tokenOperator, true
			}
			if !ok {
				continue
			}

			raw := tok.Raw(block.Module.Content)
			if raw == "" || strings.ContainsAny(raw, "\r\n") {
				continue
			}

			line := block.Line + tok.Span.Line
			char := utf16Column(doc.Line(line), tok.Span.Column)
			deltaChar := char
			if line == prevLine {
				deltaChar = char - prevChar
			}

			data = append(data,
				protocol.UInteger(line-prevLine),
				protocol.UInteger(deltaChar),
				protocol.UInteger(utf16Len(raw)),
				protocol.UInteger(typ),
				0,
			)
			prevLine, prevChar = line, char
		}
	}
	return data
}

// classify maps token indices to semantic token types by walking the
// statement tree, so the same identifier is coloured by its role.
func classify(module *smf.Module) map[int]int {
	types := make(map[int]int)
	mark := func(tok syntax.Token, typ int) {
		types[tok.Span.TokenIndex] = typ
	}

	_ = syntax.Walk(module.Statements, func(stmt syntax.Statement) error {
		switch node := stmt.(type) {
		case *syntax.Element:
			if node.Token.Kind == syntax.TokText {
				mark(node.Token, tokenString)
			} else {
				mark(node.Token, tokenType)
			}
			classifyArgs(node.Args, mark)
		case *syntax.Text:
			mark(node.Token, tokenString)
		case *syntax.Use:
			mark(node.Token, tokenKeyword)
			for _, segment := range node.Path {
				mark(segment, tokenNamespace)
			}
		case *syntax.Style:
			mark(node.Keyword, tokenKeyword)
			if node.Token != nil {
				mark(*node.Token, tokenClass)
			}
			classifyStyle(node.Body, mark)
		}
		return nil
	})
	return types
}

func classifyStyle(body []syntax.StyleStatement, mark func(syntax.Token, int)) {
	_ = syntax.WalkStyle(body, func(stmt syntax.StyleStatement) error {
		switch node := stmt.(type) {
		case *syntax.StyleBlock:
			if node.Token != nil {
				if node.Start.Kind == syntax.TokIdent && node.Start.Span.TokenIndex != node.Token.Span.TokenIndex {
					mark(node.Start, tokenKeyword)
				}
				mark(*node.Token, tokenClass)
			}
		case *syntax.StyleElement:
			if node.Key != nil {
				mark(*node.Key, tokenProperty)
			}
			classifyValue(node.Value, mark)
		}
		return nil
	})
}

func classifyArgs(args *syntax.ElementArgs, mark func(syntax.Token, int)) {
	if args == nil {
		return
	}
	for _, arg := range args.Items {
		if arg.Name != nil {
			mark(*arg.Name, tokenParameter)
		}
		classifyValue(arg.Value, mark)
	}
}

func classifyValue(value syntax.Value, mark func(syntax.Token, int)) {
	_ = syntax.WalkValue(value, func(v syntax.Value) error {
		switch val := v.(type) {
		case *syntax.Integer:
			mark(val.Token, tokenNumber)
		case *syntax.Float:
			mark(val.Token, tokenNumber)
		case *syntax.Ident:
			mark(val.Token, tokenVariable)
		case *syntax.Function:
			mark(val.Ident, tokenFunction)
		}
		return nil
	})
}
