package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// diagnosticSource is reported as the origin of every diagnostic.
const diagnosticSource = "gosmf"

// Diagnostics returns the syntax diagnostics and document errors of every
// block. Each block is built on a private registry, so editing never grows
// shared state.
func Diagnostics(doc *Document) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	for _, block := range doc.Blocks {
		for _, diag := range block.Diagnostics {
			out = append(out, syntaxDiagnostic(doc, block, diag))
		}

		built := document.Build(block.Module, registry.New())
		for _, docErr := range built.Errors() {
			out = append(out, documentDiagnostic(doc, block, docErr))
		}
	}
	return out
}

func syntaxDiagnostic(doc *Document, block *Block, diag syntax.Diagnostic) protocol.Diagnostic {
	rng := doc.rangeOf(block, syntax.Range{})
	if diag.HasRange {
		rng = doc.rangeOf(block, diag.Range)
	}
	return newDiagnostic(rng, protocol.DiagnosticSeverityError, diag.Kind.String(), diag.Message)
}

// documentDiagnostic places a structural error on the first line of its block.
func documentDiagnostic(doc *Document, block *Block, docErr document.Error) protocol.Diagnostic {
	start := doc.position(block.Line, 0)
	end := doc.position(block.Line, len(doc.Line(block.Line)))
	return newDiagnostic(
		protocol.Range{Start: start, End: end},
		severityOf(docErr.Severity),
		documentCode(docErr.Type),
		docErr.Message(),
	)
}

func newDiagnostic(rng protocol.Range, severity protocol.DiagnosticSeverity, code, message string) protocol.Diagnostic {
	src := diagnosticSource
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &src,
		Message:  message,
	}
}

func severityOf(severity document.Severity) protocol.DiagnosticSeverity {
	switch severity {
	case document.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case document.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func documentCode(typ document.ErrorType) string {
	switch typ {
	case document.ExpectedTag:
		return "expected-tag"
	default:
		return "document"
	}
}
