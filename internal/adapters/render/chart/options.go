package chart

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Option customizes a rendered chart.
type Option func(*options)

type options struct {
	title     string
	xLabel    string
	width     vg.Length
	height    vg.Length
	barWidth  vg.Length
	barColour color.Color
	format    string
}

func defaultOptions() options {
	return options{
		title:     "Top suburbs by socio-economic ranking",
		xLabel:    "Socio-economic Ranking",
		width:     8 * vg.Inch,
		height:    5 * vg.Inch,
		barWidth:  vg.Points(14),
		barColour: color.RGBA{R: 70, G: 130, B: 180, A: 255},
		format:    "png",
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithXLabel sets the value axis label.
func WithXLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.xLabel = label
		}
	}
}

// WithSize sets the canvas size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width = width
			o.height = height
		}
	}
}

// WithBarColour sets the fill colour of every bar.
func WithBarColour(c color.Color) Option {
	return func(o *options) {
		if c != nil {
			o.barColour = c
		}
	}
}

// WithFormat selects the image format understood by gonum/plot
// ("png", "svg", "jpg", ...).
func WithFormat(format string) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}
