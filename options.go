package palette

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Option configures a Palette during creation.
//
// Example:
//
//	// Plain 800x600 surface with a transparent background
//	p := palette.New(800, 600)
//
//	// HiDPI surface on white, starting with a 2px blue stroke
//	p := palette.New(800, 600,
//	    palette.WithDeviceScale(2),
//	    palette.WithBackground(color.White),
//	    palette.WithStyle(palette.Style{Stroke: palette.MustBrush("blue"), Thickness: 2}),
//	)
type Option func(*options)

// options holds optional configuration for Palette creation.
type options struct {
	deviceScale float64
	background  gg.RGBA
	font        *text.FontSource
	style       Style
}

// defaultOptions returns the default palette options.
func defaultOptions() options {
	return options{
		deviceScale: 1,
		background:  gg.Transparent,
	}
}

// WithDeviceScale renders at scale physical pixels per logical pixel.
// Ignored by NewForContext, which keeps the context's own scale.
// Values <= 0 are treated as 1.
func WithDeviceScale(scale float64) Option {
	return func(o *options) {
		if scale > 0 {
			o.deviceScale = scale
		}
	}
}

// WithBackground sets the colour used by New, Size and a whole-surface
// Clear. The default is transparent.
func WithBackground(c color.Color) Option {
	return func(o *options) {
		o.background = gg.FromColor(c)
	}
}

// WithFont sets the font source used by Text when the settings name no
// family or file. The default is the embedded Go Regular face.
func WithFont(src *text.FontSource) Option {
	return func(o *options) {
		o.font = src
	}
}

// WithStyle merges s into the palette's initial persistent style.
func WithStyle(s Style) Option {
	return func(o *options) {
		o.style = o.style.Merge(s)
	}
}
