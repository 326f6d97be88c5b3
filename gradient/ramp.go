package gradient

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// DefaultRows is the vertical resolution of a ramp.
const DefaultRows = 100

// Sample is one row of a Ramp, components in [0,1], not premultiplied.
type Sample struct {
	R, G, B, A float64
}

// Ramp is a vertical alpha gradient of constant color. Row 0 is the bottom
// (transparent) row, the last row is the top row with the full alpha.
type Ramp struct {
	Rows []Sample
}

// NewRamp returns a ramp of the given number of rows fading from alpha 0 to
// alpha in linear steps.
func NewRamp(r, g, b, alpha float64, rows int) (*Ramp, error) {
	if rows < 2 {
		return nil, fmt.Errorf("%w: ramp needs at least 2 rows, got %d", ErrInvalidInput, rows)
	}
	ramp := &Ramp{Rows: make([]Sample, rows)}
	for i := range ramp.Rows {
		ramp.Rows[i] = Sample{
			R: r, G: g, B: b,
			A: alpha * float64(i) / float64(rows-1),
		}
	}
	return ramp, nil
}

// Image returns the ramp as a 1 pixel wide image, top row first.
func (r *Ramp) Image() *image.NRGBA64 {
	n := len(r.Rows)
	img := image.NewNRGBA64(image.Rect(0, 0, 1, n))
	for i, s := range r.Rows {
		img.SetNRGBA64(0, n-1-i, color.NRGBA64{
			R: unit16(s.R),
			G: unit16(s.G),
			B: unit16(s.B),
			A: unit16(s.A),
		})
	}
	return img
}

func unit16(v float64) uint16 {
	return uint16(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
}
