package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/text"
)

// byteAdvance makes every byte one unit wide.
func byteAdvance(s string) float64 {
	return float64(len(s))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{name: "fits", input: "hello world", maxWidth: 100, want: []string{"hello world"}},
		{name: "unbounded", input: "hello world", maxWidth: 0, want: []string{"hello world"}},
		{name: "breaks before overflowing word", input: "hello world", maxWidth: 8, want: []string{"hello", "world"}},
		{name: "exact fit", input: "ab cd", maxWidth: 5, want: []string{"ab cd"}},
		{name: "long word kept whole", input: "aaaaaaaaaa b", maxWidth: 5, want: []string{"aaaaaaaaaa", "b"}},
		{name: "run of spaces dropped", input: "ab   cd", maxWidth: 4, want: []string{"ab", "cd"}},
		{name: "trailing spaces", input: "ab  ", maxWidth: 2, want: []string{"ab"}},
		{name: "line feed", input: "a\nb", maxWidth: 100, want: []string{"a", "b"}},
		{name: "empty", input: "", maxWidth: 10, want: []string{""}},
		{name: "greedy", input: "a b c d e", maxWidth: 3, want: []string{"a b", "c d", "e"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lines := text.Wrap(testCase.input, testCase.maxWidth, byteAdvance)

			got := make([]string, 0, len(lines))
			for _, line := range lines {
				got = append(got, testCase.input[line.Start:line.End])
				assert.InDelta(t, float64(line.End-line.Start), line.Width, 1e-9)
			}
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFaceMeasure(t *testing.T) {
	t.Parallel()

	face := text.DefaultFace()

	natural := face.Measure("ab", 13, 0)
	assert.InDelta(t, 14, natural.Width, 1e-9)
	assert.InDelta(t, 13, natural.Height, 1e-9)
	assert.Equal(t, 1, natural.Lines())

	doubled := face.Measure("ab", 26, 0)
	assert.InDelta(t, 28, doubled.Width, 1e-9)
	assert.InDelta(t, 26, doubled.Height, 1e-9)

	wrapped := face.Measure("hello world", 13, 50)
	assert.Equal(t, []int{6}, wrapped.LineBreaks)
	assert.InDelta(t, 35, wrapped.Width, 1e-9)
	assert.InDelta(t, 26, wrapped.Height, 1e-9)
}

func TestFaceWrapMatchesMeasure(t *testing.T) {
	t.Parallel()

	face := text.DefaultFace()
	lines := face.Wrap("one two three four", 24, 100)
	metrics := face.Measure("one two three four", 24, 100)

	require.Len(t, lines, metrics.Lines())
	for idx, brk := range metrics.LineBreaks {
		assert.Equal(t, brk, lines[idx+1].Start)
	}
}

func TestCellsMeasure(t *testing.T) {
	t.Parallel()

	metrics := text.Cells{}.Measure("日本", 10, 0)
	assert.InDelta(t, 20, metrics.Width, 1e-9, "wide runes take two cells")
	assert.InDelta(t, 10, metrics.Height, 1e-9)

	square := text.Cells{Aspect: 1}.Measure("abc def", 2, 8)
	assert.Equal(t, []int{4}, square.LineBreaks)
	assert.InDelta(t, 6, square.Width, 1e-9)
	assert.InDelta(t, 4, square.Height, 1e-9)
}
