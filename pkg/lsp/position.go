package lsp

import (
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Editors count columns in UTF-16 code units; spans count bytes.

// utf16Column converts a byte column within line to UTF-16 code units.
func utf16Column(line string, byteCol int) int {
	byteCol = min(max(byteCol, 0), len(line))
	units := 0
	for _, r := range line[:byteCol] {
		units += utf16.RuneLen(r)
	}
	return units
}

// byteColumn converts a UTF-16 column within line to a byte column. Columns
// past the end clamp to the line length.
func byteColumn(line string, col int) int {
	units := 0
	for offset, r := range line {
		if units >= col {
			return offset
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// utf16Len returns the length of s in UTF-16 code units.
func utf16Len(s string) int {
	return utf16Column(s, len(s))
}

// position converts a 0-based document line and byte column.
func (d *Document) position(line, byteCol int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(line, 0)),
		Character: protocol.UInteger(utf16Column(d.Line(line), byteCol)),
	}
}

// locate converts an editor position into the block containing it and a
// query span in that block's coordinates.
func (d *Document) locate(pos protocol.Position) (*Block, syntax.Span, bool) {
	line := int(pos.Line)
	block, ok := d.BlockAt(line)
	if !ok {
		return nil, syntax.Span{}, false
	}
	col := byteColumn(d.Line(line), int(pos.Character))
	return block, block.Module.Position(line-block.Line, col), true
}

// rangeOf converts a block range into document coordinates. The range ends
// after the last byte of its end span.
func (d *Document) rangeOf(block *Block, r syntax.Range) protocol.Range {
	return protocol.Range{
		Start: d.position(block.Line+r.Start.Line, r.Start.Column),
		End:   d.position(block.Line+r.End.Line, r.End.Column+r.End.Length),
	}
}

// fullRange covers the whole document.
func (d *Document) fullRange() protocol.Range {
	last := max(d.LineCount()-1, 0)
	return protocol.Range{
		Start: protocol.Position{},
		End:   d.position(last, len(d.Line(last))),
	}
}

// applyChange replaces the text between two editor positions.
func applyChange(content string, r protocol.Range, text string) string {
	lines := smf.BuildLines(content)
	start := offsetOf(content, lines, r.Start)
	end := offsetOf(content, lines, r.End)
	if end < start {
		start, end = end, start
	}
	return content[:start] + text + content[end:]
}

func offsetOf(content string, lines []smf.LineInfo, pos protocol.Position) int {
	line := int(pos.Line)
	if len(lines) == 0 {
		return 0
	}
	if line >= len(lines) {
		return len(content)
	}
	info := lines[line]
	lineText := content[info.StartOffset:info.NewlineStart]
	return info.StartOffset + byteColumn(lineText, int(pos.Character))
}
