// Package render draws a laid-out document through a Painter. Drawing reads
// the registry and resolved styles; it never changes layout state.
package render

import (
	"math"

	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/style"
)

// Radii are corner radii: top-left, top-right, bottom-right, bottom-left.
type Radii [4]float64

// IsZero reports whether every corner is square.
func (r Radii) IsZero() bool {
	return r == Radii{}
}

// Painter receives primitive draw calls in tree order.
type Painter interface {
	FillRect(rect geom.Rect, c style.Color)
	// StrokeRect paints the ring between rect and rect inset by widths.
	StrokeRect(rect geom.Rect, widths geom.Insets, c style.Color)
	FillRoundedRect(rect geom.Rect, radii Radii, c style.Color)
	DrawText(rect geom.Rect, s string, size float64, c style.Color)
}

// DefaultForeground is the text colour when no foregroundColor applies.
//
//nolint:gochecknoglobals // Read-only default.
var DefaultForeground = style.Color{A: 0xff}

// Options control drawing.
type Options struct {
	// TextSize is the pixel size used for text, matching layout.
	TextSize float64
}

// Draw paints every displayed node of doc in tree order: border, then
// background, then text.
func Draw(doc *document.Document, painter Painter, opts Options) {
	drawNode(doc, doc.Root(), painter, opts)
}

func drawNode(doc *document.Document, n *document.Node, painter Painter, opts Options) {
	if !n.Type.IsDisplayed() {
		return
	}

	record := doc.Layout(n)
	radii := radiiOf(doc, n)
	widths := bordersOf(doc, n)

	if border, ok := doc.Styles(n, style.KeyBorderColor).(style.BorderColor); ok && !widths.IsZero() {
		if radii.IsZero() {
			painter.StrokeRect(record.Border, widths, border.Color)
		} else {
			painter.FillRoundedRect(record.Border, radii, border.Color)
		}
	}

	if background, ok := doc.Styles(n, style.KeyBackgroundColor).(style.BackgroundColor); ok {
		inner := innerRadii(radii, widths)
		if inner.IsZero() {
			painter.FillRect(record.Padding, background.Color)
		} else {
			painter.FillRoundedRect(record.Padding, inner, background.Color)
		}
	}

	if n.Type == document.TypeText {
		fg := DefaultForeground
		if val, ok := doc.Styles(n, style.KeyForegroundColor).(style.ForegroundColor); ok {
			fg = val.Color
		}
		painter.DrawText(record.Content, doc.Text(n), opts.TextSize, fg)
	}

	for _, child := range doc.Children(n) {
		drawNode(doc, child, painter, opts)
	}
}

func radiiOf(doc *document.Document, n *document.Node) Radii {
	val, ok := doc.Styles(n, style.KeyRadius).(style.Radius)
	if !ok {
		return Radii{}
	}
	return Radii{val.Rect.X0.Amount, val.Rect.Y0.Amount, val.Rect.X1.Amount, val.Rect.Y1.Amount}
}

func bordersOf(doc *document.Document, n *document.Node) geom.Insets {
	val, ok := doc.Styles(n, style.KeyBorderWidth).(style.BorderWidth)
	if !ok {
		return geom.Insets{}
	}
	return val.Rect.Insets()
}

// innerRadii shrinks each corner by the wider adjacent border edge.
func innerRadii(radii Radii, widths geom.Insets) Radii {
	adjacent := [4]float64{
		math.Max(widths.Left, widths.Top),
		math.Max(widths.Right, widths.Top),
		math.Max(widths.Right, widths.Bottom),
		math.Max(widths.Left, widths.Bottom),
	}
	var out Radii
	for idx, r := range radii {
		out[idx] = math.Max(0, r-adjacent[idx])
	}
	return out
}
