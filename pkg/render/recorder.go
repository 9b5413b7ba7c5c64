package render

import (
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/style"
)

// Op kinds.
const (
	OpFillRect        = "fillRect"
	OpStrokeRect      = "strokeRect"
	OpFillRoundedRect = "fillRoundedRect"
	OpDrawText        = "drawText"
)

// Op is one recorded draw call.
type Op struct {
	Kind   string       `json:"kind"`
	Rect   geom.Rect    `json:"rect"`
	Color  string       `json:"color"`
	Widths *geom.Insets `json:"widths,omitempty"`
	Radii  *Radii       `json:"radii,omitempty"`
	Text   string       `json:"text,omitempty"`
	Size   float64      `json:"size,omitempty"`
}

// Recorder is a Painter that keeps a draw list.
type Recorder struct {
	Ops []Op
}

// FillRect implements Painter.
func (r *Recorder) FillRect(rect geom.Rect, c style.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c.Hex()})
}

// StrokeRect implements Painter.
func (r *Recorder) StrokeRect(rect geom.Rect, widths geom.Insets, c style.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: rect, Color: c.Hex(), Widths: &widths})
}

// FillRoundedRect implements Painter.
func (r *Recorder) FillRoundedRect(rect geom.Rect, radii Radii, c style.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRoundedRect, Rect: rect, Color: c.Hex(), Radii: &radii})
}

// DrawText implements Painter.
func (r *Recorder) DrawText(rect geom.Rect, s string, size float64, c style.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Rect: rect, Color: c.Hex(), Text: s, Size: size})
}

// Kinds returns the op kinds in order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, 0, len(r.Ops))
	for _, op := range r.Ops {
		kinds = append(kinds, op.Kind)
	}
	return kinds
}
