package surface

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned by ParseColor for specifiers it cannot resolve.
var ErrUnknownColor = errors.New("unknown color")

var tableauNames = []string{
	"blue", "orange", "green", "red", "purple",
	"brown", "pink", "gray", "olive", "cyan",
}

// Tableau is the Tableau-10 palette, the default color cycle of an Axes.
var Tableau = []color.Color{
	color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	color.NRGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	color.NRGBA{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	color.NRGBA{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	color.NRGBA{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	color.NRGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	color.NRGBA{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	color.NRGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

// ParseColor resolves a color specifier. Accepted forms are
//
//	tab:blue ... tab:cyan   Tableau-10 names (tab:grey is an alias)
//	C0 ... C9               entries of the Tableau cycle
//	#rgb #rrggbb #rrggbbaa  hex
//	steelblue, black, ...   SVG 1.1 color names
func ParseColor(spec string) (color.Color, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty specifier", ErrUnknownColor)
	case strings.HasPrefix(s, "tab:"):
		name := strings.TrimPrefix(s, "tab:")
		if name == "grey" {
			name = "gray"
		}
		for i, n := range tableauNames {
			if n == name {
				return Tableau[i], nil
			}
		}
	case len(s) == 2 && s[0] == 'c' && s[1] >= '0' && s[1] <= '9':
		return Tableau[s[1]-'0'], nil
	case strings.HasPrefix(s, "#"):
		return parseHex(spec, s[1:])
	default:
		if c, ok := colornames.Map[s]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColor, spec)
}

func parseHex(spec, h string) (color.Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, spec)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, spec)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// RGB returns an opaque color from components in [0,1]. Out of range
// components are clamped.
func RGB(r, g, b float64) color.Color {
	return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: 0xff}
}

// Components returns the non-premultiplied RGB components of c in [0,1].
// Alpha is dropped.
func Components(c color.Color) (r, g, b float64) {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return float64(n.R) / 0xffff, float64(n.G) / 0xffff, float64(n.B) / 0xffff
}

// WithAlpha returns c with its opacity multiplied by alpha.
func WithAlpha(c color.Color, alpha float64) color.Color {
	if c == nil || alpha >= 1 {
		return c
	}
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	n.A = uint16(math.Round(float64(n.A) * clamp01(alpha)))
	return n
}

func unit8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 0xff))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
