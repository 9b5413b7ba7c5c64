package smf

import "sort"

// LineInfo holds metadata for a single line in a source.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// BuildLines constructs line metadata from content.
// LF, CRLF and lone CR all end a line, matching the lexer.
func BuildLines(content string) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		switch content[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(content) && content[end] == '\n' {
				end++
			}
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}

	// Last line (may not have a trailing newline).
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// LineAt converts a byte offset to 0-based line and byte column.
// Offsets past the end clamp to the end of the last line.
func (m *Module) LineAt(offset int) (int, int) {
	if offset < 0 || len(m.Lines) == 0 {
		return 0, 0
	}
	if offset >= len(m.Content) {
		last := len(m.Lines) - 1
		return last, len(m.Content) - m.Lines[last].StartOffset
	}

	lineIdx := sort.Search(len(m.Lines), func(i int) bool {
		return m.Lines[i].EndOffset > offset
	})
	if lineIdx >= len(m.Lines) {
		lineIdx = len(m.Lines) - 1
	}
	return lineIdx, offset - m.Lines[lineIdx].StartOffset
}

// Offset converts a 0-based line and byte column to a byte offset.
// Columns past the end of the line clamp to the newline.
func (m *Module) Offset(line, col int) (int, bool) {
	if line < 0 || line >= len(m.Lines) || col < 0 {
		return 0, false
	}
	info := m.Lines[line]
	return min(info.StartOffset+col, info.NewlineStart), true
}

// LineContent returns a 0-based line without its newline.
func (m *Module) LineContent(line int) string {
	if line < 0 || line >= len(m.Lines) {
		return ""
	}
	info := m.Lines[line]
	return m.Content[info.StartOffset:info.NewlineStart]
}
