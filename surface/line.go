package surface

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// DefaultZOrder is the z-order given to lines without a ZOrder option.
const DefaultZOrder = 2

// Layer is anything an Axes can draw. Layers with a lower z-order are
// drawn first; equal z-orders keep insertion order.
type Layer interface {
	plot.Plotter
	ZOrder() int
}

// LineOption sets a style property of a line.
type LineOption func(*lineStyle)

type lineStyle struct {
	label  string
	color  color.Color
	width  vg.Length
	dashes []vg.Length
	alpha  float64
	zorder int
}

// Label sets the legend entry of the line.
func Label(s string) LineOption { return func(ls *lineStyle) { ls.label = s } }

// Color sets the stroke color. Without it the next color of the cycle is used.
func Color(c color.Color) LineOption { return func(ls *lineStyle) { ls.color = c } }

// Width sets the stroke width.
func Width(w vg.Length) LineOption { return func(ls *lineStyle) { ls.width = w } }

// Dashes sets the dash pattern of the stroke.
func Dashes(d ...vg.Length) LineOption { return func(ls *lineStyle) { ls.dashes = d } }

// Alpha sets the opacity of the line in [0,1].
func Alpha(a float64) LineOption { return func(ls *lineStyle) { ls.alpha = clamp01(a) } }

// ZOrder sets the drawing order of the line.
func ZOrder(z int) LineOption { return func(ls *lineStyle) { ls.zorder = z } }

// Line is a polyline layer with its resolved style.
type Line struct {
	*plotter.Line

	// Label is the legend entry, empty for none.
	Label string

	alpha  float64
	zorder int
}

// Color returns the stroke color the line was given, or nil if none could
// be resolved.
func (l *Line) Color() color.Color { return l.LineStyle.Color }

// Alpha returns the opacity of the line, 1 unless set.
func (l *Line) Alpha() float64 { return l.alpha }

// ZOrder implements Layer.
func (l *Line) ZOrder() int { return l.zorder }

// Plot implements plot.Plotter.
func (l *Line) Plot(c draw.Canvas, p *plot.Plot) {
	ln := *l.Line
	ln.LineStyle.Color = WithAlpha(ln.LineStyle.Color, l.alpha)
	ln.Plot(c, p)
}

// Thumbnail implements plot.Thumbnailer.
func (l *Line) Thumbnail(c *draw.Canvas) {
	ln := *l.Line
	ln.LineStyle.Color = WithAlpha(ln.LineStyle.Color, l.alpha)
	ln.Thumbnail(c)
}
