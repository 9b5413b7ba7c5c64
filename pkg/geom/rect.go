// Package geom provides the rectangle arithmetic used by layout and drawing.
package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle with origin (X0, Y0) and far corner (X1, Y1).
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Insets are per-edge distances: left, top, right, bottom.
type Insets struct {
	Left, Top, Right, Bottom float64
}

// FromSize builds a rectangle from an origin and a size.
func FromSize(x, y, width, height float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

// Width returns the horizontal extent, never negative.
func (r Rect) Width() float64 { return math.Max(0, r.X1-r.X0) }

// Height returns the vertical extent, never negative.
func (r Rect) Height() float64 { return math.Max(0, r.Y1-r.Y0) }

// IsZero reports whether every coordinate is zero.
func (r Rect) IsZero() bool { return r == Rect{} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Width() == 0 || r.Height() == 0 }

// Inset shrinks the rectangle by in. The result never inverts.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{X0: r.X0 + in.Left, Y0: r.Y0 + in.Top, X1: r.X1 - in.Right, Y1: r.Y1 - in.Bottom}
	if out.X1 < out.X0 {
		out.X1 = out.X0
	}
	if out.Y1 < out.Y0 {
		out.Y1 = out.Y0
	}
	return out
}

// Outset grows the rectangle by in.
func (r Rect) Outset(in Insets) Rect {
	return Rect{X0: r.X0 - in.Left, Y0: r.Y0 - in.Top, X1: r.X1 + in.Right, Y1: r.Y1 + in.Bottom}
}

// Translate moves the rectangle by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Contains reports whether other lies within r, edges inclusive.
func (r Rect) Contains(other Rect) bool {
	const eps = 1e-9
	return other.X0 >= r.X0-eps && other.Y0 >= r.Y0-eps && other.X1 <= r.X1+eps && other.Y1 <= r.Y1+eps
}

// Union returns the smallest rectangle covering both.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// String renders the rectangle as origin and size.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X0, r.Y0, r.Width(), r.Height())
}

// Horizontal returns left plus right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns top plus bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// IsZero reports whether every edge is zero.
func (in Insets) IsZero() bool { return in == Insets{} }
