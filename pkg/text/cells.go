package text

import "github.com/mattn/go-runewidth"

// DefaultCellAspect is the width of a terminal cell relative to its height.
const DefaultCellAspect = 0.5

// Cells measures text in terminal cells. East Asian wide runes take two
// cells. A cell is size*Aspect wide and size tall.
type Cells struct {
	Aspect float64
}

// Measure implements Measurer.
func (c Cells) Measure(text string, size, maxWidth float64) Metrics {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = DefaultCellAspect
	}
	cell := size * aspect
	return measureWith(text, maxWidth, size, func(s string) float64 {
		return float64(runewidth.StringWidth(s)) * cell
	})
}
