// Package style turns raw style properties into typed values.
package style

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// Property keys understood by the evaluator.
const (
	KeyBackgroundColor = "backgroundColor"
	KeyForegroundColor = "foregroundColor"
	KeyBorderColor     = "borderColor"
	KeyBorderWidth     = "borderWidth"
	KeyPadding         = "padding"
	KeyRadius          = "radius"
	KeyGap             = "gap"
	KeyDirection       = "direction"
	KeyChildSizing     = "childSizing"
	KeyAlign           = "align"
)

// Keys lists every property key in a stable order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var Keys = []string{
	KeyBackgroundColor,
	KeyForegroundColor,
	KeyBorderColor,
	KeyBorderWidth,
	KeyPadding,
	KeyRadius,
	KeyGap,
	KeyDirection,
	KeyChildSizing,
	KeyAlign,
}

// IsInherited reports whether a missing property falls back to the parent
// display node. Only the foreground colour cascades.
func IsInherited(key string) bool {
	return key == KeyForegroundColor
}

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGBA converts to the standard library colour type.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex renders #rrggbb, or #rrggbbaa when not opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// UnitValue is a length with a unit. Pixels is the only unit.
type UnitValue struct {
	Amount float64
	Unit   syntax.Unit
}

// Pixels builds a pixel length.
func Pixels(amount float64) UnitValue {
	return UnitValue{Amount: amount, Unit: syntax.UnitPixel}
}

// String renders the value with its unit suffix.
func (u UnitValue) String() string {
	return fmt.Sprintf("%g%s", u.Amount, u.Unit.Suffix())
}

// UnitRect holds four lengths: left, top, right, bottom.
type UnitRect struct {
	X0, Y0, X1, Y1 UnitValue
}

// UniformRect builds a rect with every edge set to amount pixels.
func UniformRect(amount float64) UnitRect {
	px := Pixels(amount)
	return UnitRect{X0: px, Y0: px, X1: px, Y1: px}
}

// Insets converts the rect to per-edge pixel insets.
func (r UnitRect) Insets() geom.Insets {
	return geom.Insets{Left: r.X0.Amount, Top: r.Y0.Amount, Right: r.X1.Amount, Bottom: r.Y1.Amount}
}

// String renders the four edges.
func (r UnitRect) String() string {
	return fmt.Sprintf("(%s, %s, %s, %s)", r.X0, r.Y0, r.X1, r.Y1)
}

// Direction is the stacking direction of a view's children.
type Direction uint8

// Directions.
const (
	Vertical Direction = iota
	VerticalReverse
	Horizontal
	HorizontalReverse
)

// String returns the source spelling.
func (d Direction) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case VerticalReverse:
		return "verticalReverse"
	case Horizontal:
		return "horizontal"
	case HorizontalReverse:
		return "horizontalReverse"
	default:
		return "direction(?)"
	}
}

// IsHorizontal reports whether children stack along the x axis.
func (d Direction) IsHorizontal() bool {
	return d == Horizontal || d == HorizontalReverse
}

// IsReverse reports whether children stack from the far edge.
func (d Direction) IsReverse() bool {
	return d == VerticalReverse || d == HorizontalReverse
}

// Sizing selects how a view sizes its children.
type Sizing uint8

// Sizing modes.
const (
	Fit Sizing = iota
	Match
)

// String returns the source spelling.
func (s Sizing) String() string {
	if s == Match {
		return "match"
	}
	return "fit"
}

// Alignment places children along the cross axis.
type Alignment uint8

// Alignments.
const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the source spelling.
func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Value is a typed style property.
// Implementations: BackgroundColor, ForegroundColor, BorderColor, BorderWidth,
// Padding, Radius, Gap, DirectionStyle, ChildSizing, Align, Empty.
type Value interface {
	// Key returns the property key the value was produced for, or "" for Empty.
	Key() string
	isValue()
}

// BackgroundColor fills the padding rect.
type BackgroundColor struct{ Color Color }

// ForegroundColor colours text; it is inherited.
type ForegroundColor struct{ Color Color }

// BorderColor strokes the border.
type BorderColor struct{ Color Color }

// BorderWidth is the border thickness per edge.
type BorderWidth struct{ Rect UnitRect }

// Padding is the space between border and content.
type Padding struct{ Rect UnitRect }

// Radius rounds the corners: top-left, top-right, bottom-right, bottom-left.
type Radius struct{ Rect UnitRect }

// Gap is the spacing between displayed children.
type Gap struct{ Amount UnitValue }

// DirectionStyle selects the stacking direction.
type DirectionStyle struct{ Direction Direction }

// ChildSizing selects fit or match sizing for children.
type ChildSizing struct{ Sizing Sizing }

// Align places children along the cross axis.
type Align struct{ Alignment Alignment }

// Empty is the absent value.
type Empty struct{}

func (BackgroundColor) Key() string { return KeyBackgroundColor }
func (ForegroundColor) Key() string { return KeyForegroundColor }
func (BorderColor) Key() string { return KeyBorderColor }
func (BorderWidth) Key() string { return KeyBorderWidth }
func (Padding) Key() string { return KeyPadding }
func (Radius) Key() string { return KeyRadius }
func (Gap) Key() string { return KeyGap }
func (DirectionStyle) Key() string { return KeyDirection }
func (ChildSizing) Key() string { return KeyChildSizing }
func (Align) Key() string { return KeyAlign }
func (Empty) Key() string { return "" }

func (BackgroundColor) isValue() {}
func (ForegroundColor) isValue() {}
func (BorderColor) isValue() {}
func (BorderWidth) isValue() {}
func (Padding) isValue() {}
func (Radius) isValue() {}
func (Gap) isValue() {}
func (DirectionStyle) isValue() {}
func (ChildSizing) isValue() {}
func (Align) isValue() {}
func (Empty) isValue() {}

// IsEmpty reports whether v is absent.
func IsEmpty(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Empty)
	return ok
}

// Describe renders a value for display.
func Describe(v Value) string {
	switch val := v.(type) {
	case BackgroundColor:
		return val.Color.Hex()
	case ForegroundColor:
		return val.Color.Hex()
	case BorderColor:
		return val.Color.Hex()
	case BorderWidth:
		return val.Rect.String()
	case Padding:
		return val.Rect.String()
	case Radius:
		return val.Rect.String()
	case Gap:
		return val.Amount.String()
	case DirectionStyle:
		return val.Direction.String()
	case ChildSizing:
		return val.Sizing.String()
	case Align:
		return val.Alignment.String()
	default:
		return "empty"
	}
}

// ParseDirection matches a direction name case-insensitively.
func ParseDirection(name string) (Direction, bool) {
	for _, d := range []Direction{Vertical, VerticalReverse, Horizontal, HorizontalReverse} {
		if strings.EqualFold(name, d.String()) {
			return d, true
		}
	}
	return 0, false
}

func parseSizing(name string) (Sizing, bool) {
	for _, s := range []Sizing{Fit, Match} {
		if strings.EqualFold(name, s.String()) {
			return s, true
		}
	}
	return 0, false
}

func parseAlignment(name string) (Alignment, bool) {
	for _, a := range []Alignment{AlignLeft, AlignCenter, AlignRight} {
		if strings.EqualFold(name, a.String()) {
			return a, true
		}
	}
	return 0, false
}
