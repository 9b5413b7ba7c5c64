package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/text"
)

// ErrInvalidColor is returned for colours that are not #rrggbb or #rrggbbaa.
var ErrInvalidColor = errors.New("invalid colour")

// Raster is a Painter backed by an in-memory RGBA image.
type Raster struct {
	img  *image.RGBA
	face *text.Face
}

// NewRaster creates a canvas filled with background. A nil face uses the
// default bitmap face.
func NewRaster(width, height int, background style.Color, face *text.Face) *Raster {
	if face == nil {
		face = text.DefaultFace()
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(nrgba(background)), image.Point{}, draw.Src)
	return &Raster{img: img, face: face}
}

// Image returns the canvas.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// WritePNG encodes the canvas as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if err := png.Encode(w, r.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// FillRect implements Painter.
func (r *Raster) FillRect(rect geom.Rect, c style.Color) {
	draw.Draw(r.img, pixels(rect), image.NewUniform(nrgba(c)), image.Point{}, draw.Over)
}

// StrokeRect implements Painter.
func (r *Raster) StrokeRect(rect geom.Rect, widths geom.Insets, c style.Color) {
	inner := rect.Inset(widths)
	r.FillRect(geom.Rect{X0: rect.X0, Y0: rect.Y0, X1: rect.X1, Y1: inner.Y0}, c)
	r.FillRect(geom.Rect{X0: rect.X0, Y0: inner.Y1, X1: rect.X1, Y1: rect.Y1}, c)
	r.FillRect(geom.Rect{X0: rect.X0, Y0: inner.Y0, X1: inner.X0, Y1: inner.Y1}, c)
	r.FillRect(geom.Rect{X0: inner.X1, Y0: inner.Y0, X1: rect.X1, Y1: inner.Y1}, c)
}

// FillRoundedRect implements Painter.
func (r *Raster) FillRoundedRect(rect geom.Rect, radii Radii, c style.Color) {
	bounds := pixels(rect)
	mask := image.NewAlpha(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if insideRounded(rect, radii, float64(x)+0.5, float64(y)+0.5) {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	draw.DrawMask(r.img, bounds, image.NewUniform(nrgba(c)), image.Point{}, mask, bounds.Min, draw.Over)
}

// DrawText implements Painter. Text is wrapped to the rect width, drawn at
// the face's natural size and scaled to size.
func (r *Raster) DrawText(rect geom.Rect, s string, size float64, c style.Color) {
	face := r.face.FontFace()
	metrics := face.Metrics()
	scale := r.face.Scale(size)
	lineHeight := r.face.LineHeight(size)

	// Slack so lines measured at exactly the rect width still fit.
	const slack = 0.5
	for idx, line := range r.face.Wrap(s, size, rect.Width()+slack) {
		segment := s[line.Start:line.End]
		width := font.MeasureString(face, segment).Ceil()
		if width == 0 {
			continue
		}

		glyphs := image.NewRGBA(image.Rect(0, 0, width, metrics.Height.Ceil()))
		drawer := font.Drawer{
			Dst:  glyphs,
			Src:  image.NewUniform(nrgba(c)),
			Face: face,
			Dot:  fixed.Point26_6{Y: metrics.Ascent},
		}
		drawer.DrawString(segment)

		top := rect.Y0 + float64(idx)*lineHeight
		dst := image.Rect(
			int(math.Round(rect.X0)),
			int(math.Round(top)),
			int(math.Round(rect.X0+float64(width)*scale)),
			int(math.Round(top+lineHeight)),
		)
		draw.ApproxBiLinear.Scale(r.img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
	}
}

// ParseHex parses #rrggbb or #rrggbbaa.
func ParseHex(s string) (style.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return style.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return style.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return style.Color{
		R: uint8(value >> 24),
		G: uint8(value >> 16),
		B: uint8(value >> 8),
		A: uint8(value),
	}, nil
}

func nrgba(c style.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func pixels(rect geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(rect.X0)),
		int(math.Round(rect.Y0)),
		int(math.Round(rect.X1)),
		int(math.Round(rect.Y1)),
	)
}

// insideRounded reports whether (x, y) lies in rect with rounded corners.
func insideRounded(rect geom.Rect, radii Radii, x, y float64) bool {
	corners := [4]struct{ cx, cy float64 }{
		{rect.X0 + radii[0], rect.Y0 + radii[0]},
		{rect.X1 - radii[1], rect.Y0 + radii[1]},
		{rect.X1 - radii[2], rect.Y1 - radii[2]},
		{rect.X0 + radii[3], rect.Y1 - radii[3]},
	}
	for idx, corner := range corners {
		rad := radii[idx]
		if rad <= 0 {
			continue
		}
		inX := (idx == 0 || idx == 3) && x < corner.cx || (idx == 1 || idx == 2) && x > corner.cx
		inY := (idx == 0 || idx == 1) && y < corner.cy || (idx == 2 || idx == 3) && y > corner.cy
		if inX && inY && math.Hypot(x-corner.cx, y-corner.cy) > rad {
			return false
		}
	}
	return true
}
