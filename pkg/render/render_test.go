package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gosmf/pkg/document"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/layout"
	"github.com/yaklabco/gosmf/pkg/registry"
	"github.com/yaklabco/gosmf/pkg/render"
	"github.com/yaklabco/gosmf/pkg/smf"
	"github.com/yaklabco/gosmf/pkg/style"
)

func laidOut(t *testing.T, src string) *document.Document {
	t.Helper()

	module, diags := smf.Parse(src)
	require.Empty(t, diags)
	doc := document.Build(module, registry.New())
	layout.New(doc, nil, layout.DefaultOptions()).Layout(geom.FromSize(0, 0, 200, 100))
	return doc
}

func TestDrawOrder(t *testing.T) {
	t.Parallel()

	doc := laidOut(t, `view(class: card) {
    "hi"
}
style card {
    backgroundColor: rgb(10, 20, 30)
    borderColor: rgb(1, 1, 1)
    borderWidth: rect_all(1px)
    foregroundColor: rgb(200, 0, 0)
}
`)
	var rec render.Recorder
	render.Draw(doc, &rec, render.Options{TextSize: 24})

	require.Equal(t, []string{render.OpStrokeRect, render.OpFillRect, render.OpDrawText}, rec.Kinds())

	view := doc.Children(doc.Root())[0]
	textNode := doc.Children(view)[0]

	assert.Equal(t, doc.Layout(view).Border, rec.Ops[0].Rect)
	assert.Equal(t, "#010101", rec.Ops[0].Color)
	require.NotNil(t, rec.Ops[0].Widths)
	assert.InDelta(t, 1, rec.Ops[0].Widths.Left, 1e-9)

	assert.Equal(t, doc.Layout(view).Padding, rec.Ops[1].Rect)
	assert.Equal(t, "#0a141e", rec.Ops[1].Color)

	assert.Equal(t, doc.Layout(textNode).Content, rec.Ops[2].Rect)
	assert.Equal(t, "hi", rec.Ops[2].Text)
	assert.Equal(t, "#c80000", rec.Ops[2].Color, "foreground is inherited by text")
	assert.InDelta(t, 24, rec.Ops[2].Size, 1e-9)
}

func TestDrawRoundedAndDefaults(t *testing.T) {
	t.Parallel()

	doc := laidOut(t, `view(class: pill) {
    "x"
}
style pill {
    backgroundColor: rgb(1, 2, 3)
    radius: rect_all(6px)
    borderColor: rgb(9, 9, 9)
}
`)
	var rec render.Recorder
	render.Draw(doc, &rec, render.Options{TextSize: 12})

	require.Equal(t, []string{render.OpFillRoundedRect, render.OpDrawText}, rec.Kinds(), "border colour without width is skipped")
	require.NotNil(t, rec.Ops[0].Radii)
	assert.Equal(t, render.Radii{6, 6, 6, 6}, *rec.Ops[0].Radii)
	assert.Equal(t, render.DefaultForeground.Hex(), rec.Ops[1].Color)
}

func TestDrawDoesNotChangeLayout(t *testing.T) {
	t.Parallel()

	doc := laidOut(t, "view {\n  \"a\"\n  view { \"b\" }\n}\n")

	before := make(map[document.NodeID]registry.Layout)
	for _, n := range doc.Nodes() {
		before[n.ID] = doc.Layout(n)
	}

	render.Draw(doc, render.NewRaster(200, 100, style.Color{R: 255, G: 255, B: 255, A: 255}, nil), render.Options{TextSize: 24})

	for _, n := range doc.Nodes() {
		assert.Equal(t, before[n.ID], doc.Layout(n))
	}
}

func TestRasterPrimitives(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	red := style.Color{R: 255, A: 255}
	redRGBA := color.RGBA{R: 255, A: 255}

	t.Run("fill", func(t *testing.T) {
		t.Parallel()

		raster := render.NewRaster(20, 20, style.Color{R: 255, G: 255, B: 255, A: 255}, nil)
		raster.FillRect(geom.FromSize(0, 0, 10, 10), red)
		assert.Equal(t, redRGBA, raster.Image().RGBAAt(5, 5))
		assert.Equal(t, white, raster.Image().RGBAAt(15, 15))
	})

	t.Run("stroke", func(t *testing.T) {
		t.Parallel()

		raster := render.NewRaster(20, 20, style.Color{R: 255, G: 255, B: 255, A: 255}, nil)
		raster.StrokeRect(geom.FromSize(0, 0, 20, 20), geom.Insets{Left: 2, Top: 2, Right: 2, Bottom: 2}, red)
		assert.Equal(t, redRGBA, raster.Image().RGBAAt(1, 10))
		assert.Equal(t, redRGBA, raster.Image().RGBAAt(10, 19))
		assert.Equal(t, white, raster.Image().RGBAAt(10, 10))
	})

	t.Run("rounded", func(t *testing.T) {
		t.Parallel()

		raster := render.NewRaster(20, 20, style.Color{R: 255, G: 255, B: 255, A: 255}, nil)
		raster.FillRoundedRect(geom.FromSize(0, 0, 20, 20), render.Radii{10, 10, 10, 10}, red)
		assert.Equal(t, white, raster.Image().RGBAAt(0, 0))
		assert.Equal(t, redRGBA, raster.Image().RGBAAt(10, 10))
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		raster := render.NewRaster(40, 20, style.Color{R: 255, G: 255, B: 255, A: 255}, nil)
		raster.DrawText(geom.FromSize(0, 0, 14, 13), "hi", 13, style.Color{A: 255})

		inked := false
		for y := range 13 {
			for x := range 14 {
				if raster.Image().RGBAAt(x, y) != white {
					inked = true
				}
			}
		}
		assert.True(t, inked)
	})
}

func TestRasterWritePNG(t *testing.T) {
	t.Parallel()

	raster := render.NewRaster(8, 4, style.Color{A: 255}, nil)

	var buf bytes.Buffer
	require.NoError(t, raster.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())
}

func TestParseHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    style.Color
		wantErr bool
	}{
		{input: "#ffffff", want: style.Color{R: 255, G: 255, B: 255, A: 255}},
		{input: "0a141e", want: style.Color{R: 10, G: 20, B: 30, A: 255}},
		{input: "#01020304", want: style.Color{R: 1, G: 2, B: 3, A: 4}},
		{input: "#fff", wantErr: true},
		{input: "#gggggg", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := render.ParseHex(testCase.input)
			if testCase.wantErr {
				require.ErrorIs(t, err, render.ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
