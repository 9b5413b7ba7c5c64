package layout

import (
	"github.com/yaklabco/gosmf/pkg/config"
	"github.com/yaklabco/gosmf/pkg/geom"
	"github.com/yaklabco/gosmf/pkg/style"
	"github.com/yaklabco/gosmf/pkg/text"
)

// Options are the engine defaults. Scale applies to the text size and the
// default gap only; pixel values from styles are used as written.
type Options struct {
	Scale     float64
	TextSize  float64
	Gap       float64
	Direction style.Direction
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		Scale:     2,
		TextSize:  12,
		Gap:       4,
		Direction: style.Vertical,
	}
}

// OptionsFromConfig builds options from configuration. Zero or unknown
// values keep the defaults.
func OptionsFromConfig(cfg config.LayoutConfig) Options {
	opts := DefaultOptions()
	if cfg.Scale > 0 {
		opts.Scale = cfg.Scale
	}
	if cfg.TextSize > 0 {
		opts.TextSize = cfg.TextSize
	}
	if cfg.Gap > 0 {
		opts.Gap = cfg.Gap
	}
	if dir, ok := style.ParseDirection(cfg.Direction); ok {
		opts.Direction = dir
	}
	return opts
}

// TextPixels returns the scaled text size.
func (o Options) TextPixels() float64 {
	return o.Scale * o.TextSize
}

// GapPixels returns the scaled default gap.
func (o Options) GapPixels() float64 {
	return o.Scale * o.Gap
}

// MeasurerFor returns the text measurer named by cfg. Unknown names use the
// bitmap face.
func MeasurerFor(name string) text.Measurer {
	if name == config.MeasurerCells {
		return text.Cells{Aspect: text.DefaultCellAspect}
	}
	return text.DefaultFace()
}

// Viewport returns the root rect configured by cfg, falling back to the
// defaults of config.NewConfig for unset sizes.
func Viewport(cfg config.LayoutConfig) geom.Rect {
	defaults := config.NewConfig().Layout
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaults.Width
	}
	if height <= 0 {
		height = defaults.Height
	}
	return geom.FromSize(0, 0, width, height)
}
