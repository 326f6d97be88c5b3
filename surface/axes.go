// Package surface provides the drawing surface used by the chart renderers:
// a gonum plot extended with a color cycle, z-ordered layers, invisible clip
// patches and autoscaling.
package surface

import (
	"fmt"
	"image/color"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// Axes is a single plotting area. Layers added to it are drawn by the
// underlying Plot.
type Axes struct {
	Plot *plot.Plot

	// Colors is the color cycle handed out to lines drawn without a Color
	// option.
	Colors []color.Color

	next    int
	layers  []Layer
	patches []*Polygon
}

// NewAxes returns an empty Axes on a new plot, cycling through Tableau.
func NewAxes() *Axes {
	a := &Axes{
		Plot:   plot.New(),
		Colors: slices.Clone(Tableau),
	}
	a.Plot.Add(stack{a})
	return a
}

var current *Axes

// Current returns the default Axes, creating it on first use.
func Current() *Axes {
	if current == nil {
		current = NewAxes()
	}
	return current
}

// SetCurrent makes a the default Axes. A nil a resets it.
func SetCurrent(a *Axes) { current = a }

// NextColor returns the next color of the cycle, or nil if the cycle is
// empty.
func (a *Axes) NextColor() color.Color {
	if len(a.Colors) == 0 {
		return nil
	}
	c := a.Colors[a.next%len(a.Colors)]
	a.next++
	return c
}

// NewLine builds a line for a without attaching it. The line's color is
// taken from the options or, failing that, from the color cycle.
func (a *Axes) NewLine(xys plotter.XYer, opts ...LineOption) (*Line, error) {
	ls := lineStyle{
		width:  plotter.DefaultLineStyle.Width,
		alpha:  1,
		zorder: DefaultZOrder,
	}
	for _, opt := range opts {
		opt(&ls)
	}

	pl, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	if ls.color == nil {
		ls.color = a.NextColor()
	}
	pl.LineStyle.Color = ls.color
	pl.LineStyle.Width = ls.width
	pl.LineStyle.Dashes = ls.dashes

	return &Line{
		Line:   pl,
		Label:  ls.label,
		alpha:  ls.alpha,
		zorder: ls.zorder,
	}, nil
}

// AddLine draws xys as a new line, then autoscales.
func (a *Axes) AddLine(xys plotter.XYer, opts ...LineOption) (*Line, error) {
	l, err := a.NewLine(xys, opts...)
	if err != nil {
		return nil, fmt.Errorf("add line: %w", err)
	}
	a.Add(l)
	a.Autoscale()
	return l, nil
}

// Add attaches layers to a. Labeled lines get a legend entry.
func (a *Axes) Add(layers ...Layer) {
	for _, l := range layers {
		a.layers = append(a.layers, l)
		if ln, ok := l.(*Line); ok && ln.Label != "" {
			a.Plot.Legend.Add(ln.Label, ln)
		}
	}
}

// AddPatch attaches an invisible polygon to a.
func (a *Axes) AddPatch(p *Polygon) {
	a.patches = append(a.patches, p)
}

// Has reports whether l is attached to a.
func (a *Axes) Has(l Layer) bool {
	for _, x := range a.layers {
		if x == l {
			return true
		}
	}
	return false
}

// Layers returns the attached layers in insertion order.
func (a *Axes) Layers() []Layer { return slices.Clone(a.layers) }

// Patches returns the attached polygons.
func (a *Axes) Patches() []*Polygon { return slices.Clone(a.patches) }

// Autoscale sets the axis limits to the union of the data ranges of all
// layers. It does nothing while no layer reports a range.
func (a *Axes) Autoscale() {
	ext := Extent{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	found := false
	for _, l := range a.layers {
		dr, ok := l.(plot.DataRanger)
		if !ok {
			continue
		}
		xmin, xmax, ymin, ymax := dr.DataRange()
		ext.XMin = math.Min(ext.XMin, xmin)
		ext.XMax = math.Max(ext.XMax, xmax)
		ext.YMin = math.Min(ext.YMin, ymin)
		ext.YMax = math.Max(ext.YMax, ymax)
		found = true
	}
	if !found {
		return
	}
	a.Plot.X.Min, a.Plot.X.Max = ext.XMin, ext.XMax
	a.Plot.Y.Min, a.Plot.Y.Max = ext.YMin, ext.YMax
}

// SetXLim fixes the horizontal axis limits.
func (a *Axes) SetXLim(lo, hi float64) { a.Plot.X.Min, a.Plot.X.Max = lo, hi }

// SetYLim fixes the vertical axis limits.
func (a *Axes) SetYLim(lo, hi float64) { a.Plot.Y.Min, a.Plot.Y.Max = lo, hi }

// stack draws the layers of an Axes in z-order. It is the only plotter
// added to the Axes' plot.
type stack struct{ a *Axes }

func (s stack) Plot(c draw.Canvas, p *plot.Plot) {
	layers := s.a.Layers()
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].ZOrder() < layers[j].ZOrder()
	})
	for _, l := range layers {
		l.Plot(c, p)
	}
}
