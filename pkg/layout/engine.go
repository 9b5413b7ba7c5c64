// Package layout computes the box model of a display tree. Each displayed
// node gets three nested rects: content, padding and border.
package layout

import (
	"math"

	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/text"
)

// axis selects a dimension a node is stretched along.
type axis uint8

const (
	axisNone axis = iota
	axisX
	axisY
)

// Engine lays out one document. It must not be used concurrently; the
// registry it writes to may be shared.
type Engine struct {
	Doc      *document.Document
	Measurer text.Measurer
	Options  Options

	// pending buffers records until a pass finishes so the registry never
	// holds values from an intermediate pass.
	pending map[registry.ID]registry.Layout
}

// New creates an engine. A nil measurer uses the default bitmap face.
func New(doc *document.Document, measurer text.Measurer, opts Options) *Engine {
	if measurer == nil {
		measurer = text.DefaultFace()
	}
	return &Engine{Doc: doc, Measurer: measurer, Options: opts}
}

// Layout lays out the whole document inside viewport and commits the result
// to the registry. The root always fills the viewport; the returned rect is
// its border rect.
func (e *Engine) Layout(viewport geom.Rect) geom.Rect {
	e.pending = make(map[registry.ID]registry.Layout)
	rect := e.layout(e.Doc.Root(), viewport, axisNone)

	for id, record := range e.pending {
		e.Doc.Registry.Set(id, record)
	}
	e.pending = nil
	return rect
}

func (e *Engine) layout(n *document.Node, bounds geom.Rect, stretch axis) geom.Rect {
	pad := e.insets(n, style.KeyPadding)
	border := e.insets(n, style.KeyBorderWidth)
	inner := bounds.Inset(pad).Inset(border)

	var area geom.Rect
	switch n.Type {
	case document.TypeRoot, document.TypeView:
		area = e.layoutView(n, inner)
	case document.TypeText:
		area = e.layoutText(n, inner)
	default:
		area = geom.Rect{X0: inner.X0, Y0: inner.Y0, X1: inner.X0, Y1: inner.Y0}
	}

	switch stretch {
	case axisX:
		area.X0, area.X1 = inner.X0, inner.X1
	case axisY:
		area.Y0, area.Y1 = inner.Y0, inner.Y1
	case axisNone:
	}

	padding := area.Outset(pad)
	outer := padding.Outset(border)
	e.pending[n.Element.ID] = registry.Layout{Content: area, Padding: padding, Border: outer}
	return outer
}

func (e *Engine) layoutText(n *document.Node, inner geom.Rect) geom.Rect {
	metrics := e.Measurer.Measure(e.Doc.Text(n), e.Options.TextPixels(), inner.Width())
	return geom.FromSize(inner.X0, inner.Y0, metrics.Width, metrics.Height)
}

// layoutView measures the children, then places them again when sizing or
// alignment depends on the measured extent.
func (e *Engine) layoutView(n *document.Node, inner geom.Rect) geom.Rect {
	dir := e.direction(n)
	gap := e.gap(n)
	sizing := e.sizing(n)
	root := n.Type == document.TypeRoot

	used := e.stack(n, inner, dir, gap, axisNone)

	place := inner
	stretch := axisNone
	if sizing == style.Match {
		stretch = crossAxis(dir)
		if !root {
			place = restrictCross(place, used, dir)
		}
	}

	offset := e.alignOffset(n, inner, used, dir)
	if offset != 0 {
		if dir.IsHorizontal() {
			place = place.Translate(0, offset)
		} else {
			place = place.Translate(offset, 0)
		}
	}

	if stretch != axisNone || offset != 0 {
		used = e.stack(n, place, dir, gap, stretch)
	}

	if root {
		return inner
	}
	return used
}

// stack lays out the displayed children of n inside bounds and returns the
// extent they use. Gaps only separate displayed children.
func (e *Engine) stack(n *document.Node, bounds geom.Rect, dir style.Direction, gap float64, stretch axis) geom.Rect {
	if dir.IsHorizontal() {
		return e.stackHorizontal(n, bounds, dir.IsReverse(), gap, stretch)
	}
	return e.stackVertical(n, bounds, dir.IsReverse(), gap, stretch)
}

func (e *Engine) stackVertical(n *document.Node, bounds geom.Rect, reverse bool, gap float64, stretch axis) geom.Rect {
	used := geom.Rect{X0: bounds.X0, X1: bounds.X0, Y0: bounds.Y0, Y1: bounds.Y0}
	cursor := bounds.Y0
	if reverse {
		used.Y0, used.Y1 = bounds.Y1, bounds.Y1
		cursor = bounds.Y1
	}

	for idx, child := range e.displayed(n) {
		if idx > 0 {
			if reverse {
				cursor -= gap
			} else {
				cursor += gap
			}
		}

		var rect geom.Rect
		if reverse {
			rect = e.layout(child, geom.Rect{X0: bounds.X0, Y0: bounds.Y0, X1: bounds.X1, Y1: math.Max(cursor, bounds.Y0)}, stretch)
			dy := cursor - rect.Height() - rect.Y0
			e.shift(child, 0, dy)
			rect = rect.Translate(0, dy)
			cursor -= math.Round(rect.Height())
			used.Y0 = cursor
		} else {
			rect = e.layout(child, geom.Rect{X0: bounds.X0, Y0: cursor, X1: bounds.X1, Y1: math.Max(cursor, bounds.Y1)}, stretch)
			cursor += math.Round(rect.Height())
			used.Y1 = cursor
		}
		used.X1 = math.Max(used.X1, rect.X1)
	}
	return used
}

func (e *Engine) stackHorizontal(n *document.Node, bounds geom.Rect, reverse bool, gap float64, stretch axis) geom.Rect {
	used := geom.Rect{X0: bounds.X0, X1: bounds.X0, Y0: bounds.Y0, Y1: bounds.Y0}
	cursor := bounds.X0
	if reverse {
		used.X0, used.X1 = bounds.X1, bounds.X1
		cursor = bounds.X1
	}

	for idx, child := range e.displayed(n) {
		if idx > 0 {
			if reverse {
				cursor -= gap
			} else {
				cursor += gap
			}
		}

		var rect geom.Rect
		if reverse {
			rect = e.layout(child, geom.Rect{X0: bounds.X0, Y0: bounds.Y0, X1: math.Max(cursor, bounds.X0), Y1: bounds.Y1}, stretch)
			dx := cursor - rect.Width() - rect.X0
			e.shift(child, dx, 0)
			rect = rect.Translate(dx, 0)
			cursor -= rect.Width()
			used.X0 = cursor
		} else {
			rect = e.layout(child, geom.Rect{X0: cursor, Y0: bounds.Y0, X1: math.Max(cursor, bounds.X1), Y1: bounds.Y1}, stretch)
			cursor += rect.Width()
			used.X1 = cursor
		}
		used.Y1 = math.Max(used.Y1, rect.Y1)
	}
	return used
}

// shift moves the pending records of n and its displayed descendants.
func (e *Engine) shift(n *document.Node, dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	if record, ok := e.pending[n.Element.ID]; ok {
		e.pending[n.Element.ID] = registry.Layout{
			Content: record.Content.Translate(dx, dy),
			Padding: record.Padding.Translate(dx, dy),
			Border:  record.Border.Translate(dx, dy),
		}
	}
	for _, child := range e.displayed(n) {
		e.shift(child, dx, dy)
	}
}

func (e *Engine) displayed(n *document.Node) []*document.Node {
	var out []*document.Node
	for _, child := range e.Doc.Children(n) {
		if child.Type.IsDisplayed() {
			out = append(out, child)
		}
	}
	return out
}

func (e *Engine) alignOffset(n *document.Node, inner, used geom.Rect, dir style.Direction) float64 {
	align, ok := e.Doc.Styles(n, style.KeyAlign).(style.Align)
	if !ok || align.Alignment == style.AlignLeft {
		return 0
	}

	slack := inner.Width() - used.Width()
	if dir.IsHorizontal() {
		slack = inner.Height() - used.Height()
	}
	if slack <= 0 {
		return 0
	}
	if align.Alignment == style.AlignCenter {
		return slack / 2
	}
	return slack
}

func (e *Engine) insets(n *document.Node, key string) geom.Insets {
	switch val := e.Doc.Styles(n, key).(type) {
	case style.Padding:
		return val.Rect.Insets()
	case style.BorderWidth:
		return val.Rect.Insets()
	default:
		return geom.Insets{}
	}
}

func (e *Engine) gap(n *document.Node) float64 {
	if val, ok := e.Doc.Styles(n, style.KeyGap).(style.Gap); ok {
		return val.Amount.Amount
	}
	return e.Options.GapPixels()
}

func (e *Engine) direction(n *document.Node) style.Direction {
	if val, ok := e.Doc.Styles(n, style.KeyDirection).(style.DirectionStyle); ok {
		return val.Direction
	}
	return e.Options.Direction
}

func (e *Engine) sizing(n *document.Node) style.Sizing {
	if val, ok := e.Doc.Styles(n, style.KeyChildSizing).(style.ChildSizing); ok {
		return val.Sizing
	}
	return style.Fit
}

func crossAxis(dir style.Direction) axis {
	if dir.IsHorizontal() {
		return axisY
	}
	return axisX
}

// restrictCross limits bounds to the cross extent of used.
func restrictCross(bounds, used geom.Rect, dir style.Direction) geom.Rect {
	if dir.IsHorizontal() {
		bounds.Y0, bounds.Y1 = used.Y0, used.Y1
	} else {
		bounds.X0, bounds.X1 = used.X0, used.X1
	}
	return bounds
}
