package surface

import (
	"math"

	"gonum.org/v1/plot/plotter"
)

// Extent is an axis-aligned bounding box in data coordinates.
type Extent struct {
	XMin, XMax, YMin, YMax float64
}

// ExtentOf returns the bounding box of xys. The result is inverted
// (min = +Inf, max = -Inf) when xys is empty.
func ExtentOf(xys plotter.XYer) Extent {
	e := Extent{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for i := 0; i < xys.Len(); i++ {
		x, y := xys.XY(i)
		e.XMin = math.Min(e.XMin, x)
		e.XMax = math.Max(e.XMax, x)
		e.YMin = math.Min(e.YMin, y)
		e.YMax = math.Max(e.YMax, y)
	}
	return e
}

// Width returns XMax - XMin.
func (e Extent) Width() float64 { return e.XMax - e.XMin }

// Height returns YMax - YMin.
func (e Extent) Height() float64 { return e.YMax - e.YMin }

// Polygon is a closed polygon with neither fill nor border. The last
// vertex connects back to the first.
type Polygon struct {
	Vertices plotter.XYs
}
