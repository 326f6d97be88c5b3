package gradient

import (
	"errors"
	"image/color"
	"math"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"energyplot/surface"
)

func TestFillUnderPeak(t *testing.T) {
	ax := surface.NewAxes()
	line, im, err := Fill([]float64{0, 1, 2}, []float64{0, 1, 0}, surface.RGB(0, 0, 1), ax)
	if err != nil {
		t.Fatal(err)
	}

	want := plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 0}}
	if diff := cmp.Diff(want, im.Clip.Vertices); diff != "" {
		t.Errorf("clip polygon mismatch (-want +got):\n%s", diff)
	}

	if len(im.Ramp.Rows) != DefaultRows {
		t.Fatalf("ramp has %d rows, want %d", len(im.Ramp.Rows), DefaultRows)
	}
	for i, s := range im.Ramp.Rows {
		if s.R != 0 || s.G != 0 || s.B != 1 {
			t.Errorf("row %d: rgb = (%g, %g, %g), want (0, 0, 1)", i, s.R, s.G, s.B)
		}
	}
	if a := im.Ramp.Rows[0].A; a != 0 {
		t.Errorf("bottom alpha = %g, want 0", a)
	}
	if a := im.Ramp.Rows[DefaultRows-1].A; a != 1 {
		t.Errorf("top alpha = %g, want 1", a)
	}

	wantExt := surface.Extent{XMin: 0, XMax: 2, YMin: 0, YMax: 1}
	if im.Extent != wantExt {
		t.Errorf("extent = %+v, want %+v", im.Extent, wantExt)
	}
	if line.Len() != 3 {
		t.Errorf("line has %d points, want 3", line.Len())
	}
}

func TestFillAttachesToSurface(t *testing.T) {
	ax := surface.NewAxes()
	line, im, err := Fill([]float64{1, 2, 3, 4}, []float64{3, 1, 4, 1}, nil, ax, surface.Label("series"))
	if err != nil {
		t.Fatal(err)
	}
	if !ax.Has(line) || !ax.Has(im) {
		t.Fatal("line and image must both be attached to the axes")
	}
	layers := ax.Layers()
	if len(layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(layers))
	}
	if layers[0] != surface.Layer(im) || layers[1] != surface.Layer(line) {
		t.Error("image must be added just behind the line")
	}
	patches := ax.Patches()
	if len(patches) != 1 || patches[0] != im.Clip {
		t.Errorf("got patches %v, want the clip polygon", patches)
	}
	if got := len(im.Clip.Vertices); got != 4+2 {
		t.Errorf("clip polygon has %d vertices, want 6", got)
	}
	if im.ZOrder() != line.ZOrder() {
		t.Errorf("image z-order %d differs from line z-order %d", im.ZOrder(), line.ZOrder())
	}
	if ax.Plot.X.Min != 1 || ax.Plot.X.Max != 4 || ax.Plot.Y.Min != 1 || ax.Plot.Y.Max != 4 {
		t.Errorf("axes not autoscaled: x [%g, %g], y [%g, %g]",
			ax.Plot.X.Min, ax.Plot.X.Max, ax.Plot.Y.Min, ax.Plot.Y.Max)
	}
}

func TestFillDefaultsToLineColor(t *testing.T) {
	ax := surface.NewAxes()
	for i := 0; i < 2; i++ {
		line, im, err := Fill([]float64{0, 1}, []float64{0, 1}, nil, ax)
		if err != nil {
			t.Fatal(err)
		}
		if line.Color() != surface.Tableau[i] {
			t.Errorf("line %d: color %v, want cycle color %v", i, line.Color(), surface.Tableau[i])
		}
		r, g, b := surface.Components(surface.Tableau[i])
		top := im.Ramp.Rows[len(im.Ramp.Rows)-1]
		if top.R != r || top.G != g || top.B != b {
			t.Errorf("fill %d: rgb = (%g, %g, %g), want (%g, %g, %g)", i, top.R, top.G, top.B, r, g, b)
		}
	}
}

func TestFillUsesLineAlpha(t *testing.T) {
	ax := surface.NewAxes()
	line, im, err := Fill([]float64{0, 1}, []float64{0, 1}, surface.RGB(1, 0, 0), ax,
		surface.Alpha(0.4), surface.ZOrder(5), surface.Width(vg.Points(2)))
	if err != nil {
		t.Fatal(err)
	}
	if line.Alpha() != 0.4 {
		t.Errorf("line alpha = %g, want 0.4", line.Alpha())
	}
	if a := im.Ramp.Rows[len(im.Ramp.Rows)-1].A; math.Abs(a-0.4) > 1e-12 {
		t.Errorf("top alpha = %g, want 0.4", a)
	}
	if im.ZOrder() != 5 || line.ZOrder() != 5 {
		t.Errorf("z-orders = %d, %d, want 5", im.ZOrder(), line.ZOrder())
	}
	if line.LineStyle.Width != vg.Points(2) {
		t.Errorf("width = %v, want 2pt", line.LineStyle.Width)
	}
}

func TestFillInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"mismatched lengths", []float64{1, 2, 3}, []float64{1, 2}},
		{"single point", []float64{1}, []float64{1}},
		{"empty", nil, nil},
		{"nan", []float64{0, 1}, []float64{0, math.NaN()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax := surface.NewAxes()
			_, _, err := Fill(tc.x, tc.y, nil, ax)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("got error %v, want ErrInvalidInput", err)
			}
			if len(ax.Layers()) != 0 || len(ax.Patches()) != 0 {
				t.Error("failed call must not touch the axes")
			}
			if c := ax.NextColor(); c != surface.Tableau[0] {
				t.Errorf("failed call advanced the color cycle to %v", c)
			}
		})
	}
}

func TestFillColorResolution(t *testing.T) {
	ax := surface.NewAxes()
	ax.Colors = nil
	_, _, err := Fill([]float64{0, 1}, []float64{0, 1}, nil, ax)
	if !errors.Is(err, ErrColorResolution) {
		t.Fatalf("got error %v, want ErrColorResolution", err)
	}
	if len(ax.Layers()) != 0 {
		t.Error("failed call must not touch the axes")
	}

	// An explicit fill color does not need the cycle.
	if _, _, err := Fill([]float64{0, 1}, []float64{0, 1}, surface.RGB(0, 1, 0), ax); err != nil {
		t.Fatalf("explicit fill color: %v", err)
	}
}

func TestFillSameBoundsOnFreshSurfaces(t *testing.T) {
	x := []float64{1990, 2000, 2010, 2020}
	y := []float64{11.9, 15.4, 21.5, 26.8}
	var exts []surface.Extent
	for range 2 {
		_, im, err := Fill(x, y, nil, surface.NewAxes())
		if err != nil {
			t.Fatal(err)
		}
		exts = append(exts, im.Extent)
	}
	if diff := cmp.Diff(exts[0], exts[1]); diff != "" {
		t.Errorf("bounds differ between surfaces (-first +second):\n%s", diff)
	}
}

func TestFillCurrentSurface(t *testing.T) {
	ax := surface.NewAxes()
	surface.SetCurrent(ax)
	defer surface.SetCurrent(nil)

	line, _, err := Fill([]float64{0, 1}, []float64{1, 2}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !ax.Has(line) {
		t.Error("nil axes must draw on the current surface")
	}
}

func TestFillDegenerateSegments(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"sloped", []float64{0, 1}, []float64{0, 1}},
		{"horizontal", []float64{0, 1}, []float64{1, 1}},
		{"vertical", []float64{1, 1}, []float64{0, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax := surface.NewAxes()
			_, im, err := Fill(tc.x, tc.y, nil, ax)
			if err != nil {
				t.Fatal(err)
			}
			if got := len(im.Clip.Vertices); got != 4 {
				t.Errorf("clip polygon has %d vertices, want 4", got)
			}
			c := vgimg.New(4*vg.Inch, 3*vg.Inch)
			ax.Plot.Draw(draw.New(c))
		})
	}
}

// plotImage draws im alone on a 4x3 inch canvas at 72 dpi, with the data
// area starting left from the left edge. It returns a lookup of the canvas
// color at a data point and the bytes allocated while drawing.
func plotImage(t *testing.T, ax *surface.Axes, im *Image, left vg.Length) (func(x, y float64) color.RGBA, uint64) {
	t.Helper()
	img := vgimg.NewWith(vgimg.UseWH(4*vg.Inch, 3*vg.Inch), vgimg.UseDPI(72))
	c := draw.Crop(draw.New(img), left, 0, 0, 0)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	im.Plot(c, ax.Plot)
	runtime.ReadMemStats(&after)

	trX, trY := ax.Plot.Transforms(&c)
	dst := img.Image()
	h := float64(dst.Bounds().Dy())
	at := func(x, y float64) color.RGBA {
		px := int(trX(x).Dots(72))
		py := int(h - trY(y).Dots(72))
		return color.RGBAModel.Convert(dst.At(px, py)).(color.RGBA)
	}
	return at, after.TotalAlloc - before.TotalAlloc
}

func TestFillRasterStaysUnderCurve(t *testing.T) {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	tests := []struct {
		name       string
		xlim, ylim [2]float64
		left       vg.Length
		// tinted points lie under the curve and inside the data area.
		tinted [][2]float64
		// clear points lie above the curve or outside the data area.
		clear [][2]float64
	}{
		{
			name: "data limits",
			xlim: [2]float64{0, 2}, ylim: [2]float64{0, 1},
			tinted: [][2]float64{{1, 0.5}, {0.5, 0.4}, {1, 0.9}},
			clear:  [][2]float64{{0.2, 0.8}, {1.8, 0.8}, {0.3, 0.6}},
		},
		{
			name: "zoomed on the peak",
			xlim: [2]float64{0.99, 1.01}, ylim: [2]float64{0.9, 1},
			tinted: [][2]float64{{0.995, 0.95}, {1.005, 0.95}, {1, 0.92}},
			clear:  [][2]float64{{0.991, 0.998}, {1.009, 0.998}},
		},
		{
			name: "cropped on the left",
			xlim: [2]float64{1, 2}, ylim: [2]float64{0, 1},
			left:   2 * vg.Inch,
			tinted: [][2]float64{{1.5, 0.3}, {1.2, 0.5}},
			clear:  [][2]float64{{1.8, 0.5}, {0.5, 0.2}, {0.9, 0.5}},
		},
		{
			name: "outside the limits",
			xlim: [2]float64{3, 4}, ylim: [2]float64{0, 1},
			clear: [][2]float64{{3.5, 0.1}, {3.5, 0.9}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ax := surface.NewAxes()
			_, im, err := Fill([]float64{0, 1, 2}, []float64{0, 1, 0}, surface.RGB(0, 0, 1), ax)
			if err != nil {
				t.Fatal(err)
			}
			ax.SetXLim(tc.xlim[0], tc.xlim[1])
			ax.SetYLim(tc.ylim[0], tc.ylim[1])

			at, alloc := plotImage(t, ax, im, tc.left)
			// The visible window is at most 4x3 inches at 144 dpi.
			if alloc > 32<<20 {
				t.Errorf("drawing allocated %d bytes", alloc)
			}
			for _, pt := range tc.tinted {
				if c := at(pt[0], pt[1]); c.R > 230 || c.B <= c.R {
					t.Errorf("(%g, %g) = %+v, want a blue tint", pt[0], pt[1], c)
				}
			}
			for _, pt := range tc.clear {
				if c := at(pt[0], pt[1]); c != white {
					t.Errorf("(%g, %g) = %+v, want untinted", pt[0], pt[1], c)
				}
			}
		})
	}
}

func TestCustomRenderer(t *testing.T) {
	r := Renderer{Rows: 7, DPI: 72}
	_, im, err := r.Render([]float64{0, 1}, []float64{0, 1}, nil, surface.NewAxes())
	if err != nil {
		t.Fatal(err)
	}
	if len(im.Ramp.Rows) != 7 {
		t.Errorf("ramp has %d rows, want 7", len(im.Ramp.Rows))
	}
	if im.DPI != 72 {
		t.Errorf("dpi = %g, want 72", im.DPI)
	}

	r.Rows = 1
	if _, _, err := r.Render([]float64{0, 1}, []float64{0, 1}, nil, surface.NewAxes()); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("one-row ramp: got %v, want ErrInvalidInput", err)
	}
}
