// Package gradient draws lines with a vertical alpha gradient filled
// beneath them.
//
// The fill is a small ramp raster whose opacity grows linearly from the
// lowest data value up to the line's own alpha. It is stretched over the
// bounding box of the line and clipped to the polygon formed by the line
// and a flat baseline at the lowest y, so only the area under the curve is
// tinted.
package gradient

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot/plotter"

	"energyplot/surface"
)

var (
	// ErrInvalidInput is returned for mismatched or too short inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrColorResolution is returned when no fill color was given and the
	// line has none either.
	ErrColorResolution = errors.New("cannot resolve fill color")
)

// DefaultDPI is the resolution the clipped ramp is rasterised at.
const DefaultDPI = 144

// Renderer draws gradient-filled lines.
type Renderer struct {
	// Rows is the vertical resolution of the ramp, DefaultRows if zero.
	Rows int

	// DPI is the raster resolution of the fill, DefaultDPI if zero.
	DPI float64
}

// DefaultRenderer is used by Fill.
var DefaultRenderer = Renderer{Rows: DefaultRows, DPI: DefaultDPI}

// Fill draws x, y with DefaultRenderer.
func Fill(x, y []float64, fill color.Color, ax *surface.Axes, opts ...surface.LineOption) (*surface.Line, *Image, error) {
	return DefaultRenderer.Render(x, y, fill, ax, opts...)
}

// Render draws the polyline x, y on ax and fills the area beneath it with
// fill, fading from transparent at min(y) to the line's alpha. A nil fill
// uses the line's color and a nil ax uses surface.Current. The options are
// handed to the line unchanged.
//
// On success the image and the line are attached to ax, the image just
// behind the line, together with the invisible clip polygon, and ax is
// autoscaled. On error ax is left untouched.
func (r Renderer) Render(x, y []float64, fill color.Color, ax *surface.Axes, opts ...surface.LineOption) (*surface.Line, *Image, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w: len(x) = %d, len(y) = %d", ErrInvalidInput, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidInput, len(x))
	}
	rows := r.Rows
	if rows == 0 {
		rows = DefaultRows
	}
	if rows < 2 {
		return nil, nil, fmt.Errorf("%w: ramp needs at least 2 rows, got %d", ErrInvalidInput, rows)
	}
	if ax == nil {
		ax = surface.Current()
	}

	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	line, err := ax.NewLine(xys, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if fill == nil {
		fill = line.Color()
	}
	if fill == nil {
		return nil, nil, ErrColorResolution
	}
	cr, cg, cb := surface.Components(fill)
	ramp, err := NewRamp(cr, cg, cb, line.Alpha(), rows)
	if err != nil {
		return nil, nil, err
	}

	ext := surface.ExtentOf(xys)
	im := &Image{
		Ramp:   ramp,
		Clip:   ClipPath(xys, ext),
		Extent: ext,
		DPI:    r.DPI,
		zorder: line.ZOrder(),
	}

	ax.AddPatch(im.Clip)
	ax.Add(im, line)
	ax.Autoscale()
	return line, im, nil
}

// ClipPath returns the polygon under xys: its points followed by the
// baseline corners (XMax, YMin) and (XMin, YMin).
func ClipPath(xys plotter.XYs, ext surface.Extent) *surface.Polygon {
	v := make(plotter.XYs, 0, len(xys)+2)
	v = append(v, xys...)
	v = append(v,
		plotter.XY{X: ext.XMax, Y: ext.YMin},
		plotter.XY{X: ext.XMin, Y: ext.YMin},
	)
	return &surface.Polygon{Vertices: v}
}
