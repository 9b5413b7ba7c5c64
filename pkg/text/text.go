// Package text measures and wraps text for layout. Every measurer shares the
// same greedy wrapping policy so layout does not depend on the font backend.
package text

import (
	"math"
	"strings"
)

// Metrics is the measured extent of a wrapped string.
type Metrics struct {
	Width  float64
	Height float64

	// LineBreaks holds the byte offset at which each line after the first
	// starts.
	LineBreaks []int
}

// Lines returns the number of lines.
func (m Metrics) Lines() int {
	return len(m.LineBreaks) + 1
}

// Measurer measures text at a pixel size within an available width. A
// maxWidth of zero or less means the width is unbounded.
type Measurer interface {
	Measure(text string, size, maxWidth float64) Metrics
}

// Line is one wrapped line: text[Start:End] with its advance.
type Line struct {
	Start int
	End   int
	Width float64
}

// AdvanceFunc returns the horizontal advance of s.
type AdvanceFunc func(s string) float64

// Wrap breaks text into lines no wider than maxWidth where possible. A line
// only breaks at the space before a word that would overflow it, and the
// space is dropped from the start of the next line. A word wider than
// maxWidth is kept whole on its own line. Line feeds always break.
func Wrap(text string, maxWidth float64, advance AdvanceFunc) []Line {
	if maxWidth <= 0 {
		maxWidth = math.Inf(1)
	}

	var lines []Line
	offset := 0
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, offset, maxWidth, advance)...)
		offset += len(para) + 1
	}
	return lines
}

func wrapParagraph(para string, offset int, maxWidth float64, advance AdvanceFunc) []Line {
	para = strings.TrimSuffix(para, "\r")
	if para == "" {
		return []Line{{Start: offset, End: offset}}
	}

	var lines []Line
	cur := Line{Start: offset, End: offset}
	for _, word := range words(para) {
		start, end := offset+word.start, offset+word.end
		candidate := advance(para[cur.Start-offset : word.end])
		if cur.End > cur.Start && candidate > maxWidth {
			if word.end-word.start == word.lead {
				// Trailing spaces never open a line.
				continue
			}
			lines = append(lines, cur)
			// Drop the separating space.
			start += word.lead
			cur = Line{Start: start, End: end, Width: advance(para[start-offset : word.end])}
			continue
		}
		cur.End = end
		cur.Width = candidate
	}
	return append(lines, cur)
}

type span struct {
	start int
	end   int
	lead  int
}

// words splits s into words that carry their leading spaces.
func words(s string) []span {
	var out []span
	i := 0
	for i < len(s) {
		start := i
		for i < len(s) && s[i] == ' ' {
			i++
		}
		lead := i - start
		for i < len(s) && s[i] != ' ' {
			i++
		}
		out = append(out, span{start: start, end: i, lead: lead})
	}
	return out
}

// measureWith wraps text and totals the line metrics.
func measureWith(text string, maxWidth, lineHeight float64, advance AdvanceFunc) Metrics {
	lines := Wrap(text, maxWidth, advance)

	metrics := Metrics{Height: lineHeight * float64(len(lines))}
	for idx, line := range lines {
		metrics.Width = math.Max(metrics.Width, line.Width)
		if idx > 0 {
			metrics.LineBreaks = append(metrics.LineBreaks, line.Start)
		}
	}
	return metrics
}
