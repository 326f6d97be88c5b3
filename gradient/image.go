package gradient

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"

	"energyplot/surface"
)

// Image is a gradient ramp stretched over Extent and clipped to Clip.
type Image struct {
	Ramp   *Ramp
	Clip   *surface.Polygon
	Extent surface.Extent

	// DPI is the resolution the clipped ramp is rasterised at.
	DPI float64

	zorder int
}

// ZOrder implements surface.Layer.
func (im *Image) ZOrder() int { return im.zorder }

// DataRange implements plot.DataRanger.
func (im *Image) DataRange() (xmin, xmax, ymin, ymax float64) {
	return im.Extent.XMin, im.Extent.XMax, im.Extent.YMin, im.Extent.YMax
}

// Plot implements plot.Plotter. Only the part of the image inside the
// data area of c is rasterised and drawn; a zero-width or zero-height extent
// draws nothing.
func (im *Image) Plot(c vgdraw.Canvas, p *plot.Plot) {
	if im.Ramp == nil || im.Clip == nil {
		return
	}
	if !(im.Extent.Width() > 0 && im.Extent.Height() > 0) {
		return
	}
	trX, trY := p.Transforms(&c)
	x0, x1 := trX(im.Extent.XMin), trX(im.Extent.XMax)
	y0, y1 := trY(im.Extent.YMin), trY(im.Extent.YMax)
	for _, v := range []vg.Length{x0, x1, y0, y1} {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return
		}
	}

	dpi := im.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	// pixels per point
	s := dpi / 72
	w, h := float64(x1-x0)*s, float64(y1-y0)*s
	if !(w > 0 && h > 0) {
		return
	}

	vis, ok := intersect(vg.Rectangle{
		Min: vg.Point{X: x0, Y: y0},
		Max: vg.Point{X: x1, Y: y1},
	}, c.Rectangle)
	if !ok {
		return
	}
	win := image.Rect(
		int(math.Floor(float64(vis.Min.X-x0)*s)),
		int(math.Floor(float64(y1-vis.Max.Y)*s)),
		int(math.Ceil(float64(vis.Max.X-x0)*s)),
		int(math.Ceil(float64(y1-vis.Min.Y)*s)),
	)
	if win.Empty() {
		return
	}

	poly := make([]point, len(im.Clip.Vertices))
	for i, v := range im.Clip.Vertices {
		poly[i] = point{
			X: float64(trX(v.X)-x0) * s,
			Y: float64(y1-trY(v.Y)) * s,
		}
	}
	img := rasterize(im.Ramp.Image(), w, h, win, poly)

	c.DrawImage(vg.Rectangle{
		Min: vg.Point{X: x0 + vg.Length(float64(win.Min.X)/s), Y: y1 - vg.Length(float64(win.Max.Y)/s)},
		Max: vg.Point{X: x0 + vg.Length(float64(win.Max.X)/s), Y: y1 - vg.Length(float64(win.Min.Y)/s)},
	}, img)
}

// point is a vertex in pixel space, origin at the top left.
type point struct{ X, Y float64 }

// rasterize stretches ramp to w x h pixels, masks it with poly and returns
// the pixels inside win. Memory is proportional to win, not to w x h.
func rasterize(ramp image.Image, w, h float64, win image.Rectangle, poly []point) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, win.Dx(), win.Dy()))
	if len(poly) < 3 || win.Empty() {
		return out
	}
	sr := ramp.Bounds()
	kx, ky := w/float64(sr.Dx()), h/float64(sr.Dy())
	stretched := image.NewRGBA(out.Bounds())
	xdraw.BiLinear.Transform(stretched, f64.Aff3{
		kx, 0, -float64(sr.Min.X)*kx - float64(win.Min.X),
		0, ky, -float64(sr.Min.Y)*ky - float64(win.Min.Y),
	}, ramp, sr, xdraw.Src, nil)

	at := func(p point) (float32, float32) {
		return float32(p.X - float64(win.Min.X)), float32(p.Y - float64(win.Min.Y))
	}
	z := vector.NewRasterizer(win.Dx(), win.Dy())
	z.MoveTo(at(poly[0]))
	for _, pt := range poly[1:] {
		z.LineTo(at(pt))
	}
	z.ClosePath()
	z.Draw(out, out.Bounds(), stretched, image.Point{})
	return out
}

func intersect(a, b vg.Rectangle) (vg.Rectangle, bool) {
	r := vg.Rectangle{
		Min: vg.Point{X: max(a.Min.X, b.Min.X), Y: max(a.Min.Y, b.Min.Y)},
		Max: vg.Point{X: min(a.Max.X, b.Max.X), Y: min(a.Max.Y, b.Max.Y)},
	}
	return r, r.Min.X < r.Max.X && r.Min.Y < r.Max.Y
}
