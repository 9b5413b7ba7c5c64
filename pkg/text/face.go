package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face measures text with a font face scaled to the requested pixel size.
type Face struct {
	face font.Face

	// natural is the face's own line height in pixels.
	natural float64
}

// NewFace wraps a font face.
func NewFace(face font.Face) *Face {
	natural := toFloat(face.Metrics().Height)
	if natural <= 0 {
		natural = 1
	}
	return &Face{face: face, natural: natural}
}

// DefaultFace returns a measurer backed by the built-in 7x13 bitmap face.
func DefaultFace() *Face {
	return NewFace(basicfont.Face7x13)
}

// FontFace returns the wrapped face.
func (f *Face) FontFace() font.Face {
	return f.face
}

// Scale returns the factor mapping the face's natural size to size.
func (f *Face) Scale(size float64) float64 {
	if size <= 0 {
		return 1
	}
	return size / f.natural
}

// Measure implements Measurer.
func (f *Face) Measure(text string, size, maxWidth float64) Metrics {
	scale := f.Scale(size)
	advance := func(s string) float64 {
		return toFloat(font.MeasureString(f.face, s)) * scale
	}
	return measureWith(text, maxWidth, f.LineHeight(size), advance)
}

// Wrap wraps text with this face's advances at size.
func (f *Face) Wrap(text string, size, maxWidth float64) []Line {
	scale := f.Scale(size)
	return Wrap(text, maxWidth, func(s string) float64 {
		return toFloat(font.MeasureString(f.face, s)) * scale
	})
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// LineHeight returns the height of one line at size.
func (f *Face) LineHeight(size float64) float64 {
	return f.natural * f.Scale(size)
}
