package lsp

import (
	"errors"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ErrNotFormattable is returned for documents that cannot be formatted as a
// whole: Markdown buffers and sources with syntax errors.
var ErrNotFormattable = errors.New("document cannot be formatted")

// Format returns the edits that rewrite doc in canonical form. No edits are
// returned when the document is already formatted.
func Format(doc *Document, opts syntax.FormatOptions) ([]protocol.TextEdit, error) {
	if !doc.IsSource() || len(doc.Blocks) != 1 || len(doc.Blocks[0].Diagnostics) > 0 {
		return nil, ErrNotFormattable
	}

	formatted, err := doc.Blocks[0].Module.FormatChecked(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFormattable, err)
	}
	if formatted == doc.Content {
		return []protocol.TextEdit{}, nil
	}
	return []protocol.TextEdit{{Range: doc.fullRange(), NewText: formatted}}, nil
}
