package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/plot/plotter"
)

// ErrUnknownCountry is returned when a country is not part of a dataset.
var ErrUnknownCountry = errors.New("unknown country")

// ErrDuplicateEntry is returned by a pivot that finds two values for the
// same year and country.
var ErrDuplicateEntry = errors.New("duplicate entry")

// Series is a named sequence of (x, y) values, usually years against a
// measurement. It implements plotter.XYer.
type Series struct {
	Name string
	X, Y []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.X) }

// XY returns the i-th point.
func (s Series) XY(i int) (x, y float64) { return s.X[i], s.Y[i] }

// XYs copies s into plotter.XYs.
func (s Series) XYs() plotter.XYs {
	xys := make(plotter.XYs, len(s.X))
	for i := range s.X {
		xys[i].X, xys[i].Y = s.X[i], s.Y[i]
	}
	return xys
}

// DropNaN returns s without the points whose y value is NaN.
func (s Series) DropNaN() Series {
	out := Series{Name: s.Name}
	for i := range s.X {
		if math.IsNaN(s.Y[i]) {
			continue
		}
		out.X = append(out.X, s.X[i])
		out.Y = append(out.Y, s.Y[i])
	}
	return out
}

// Scale returns s with every y value divided by div.
func (s Series) Scale(div float64) Series {
	out := Series{Name: s.Name, X: slices.Clone(s.X), Y: make([]float64, len(s.Y))}
	for i, y := range s.Y {
		out.Y[i] = y / div
	}
	return out
}

// Table is a pivoted dataset: one column of values per country, one row
// per year. Missing cells are NaN.
type Table struct {
	Value     string
	Years     []int
	Countries []string

	cells map[string][]float64
}

// pivot arranges parallel country/year/value slices into a Table with
// sorted years and countries.
func pivot(value string, countries []string, years []int, values []float64) (*Table, error) {
	t := &Table{
		Value:     value,
		Years:     slices.Compact(slices.Sorted(slices.Values(years))),
		Countries: slices.Compact(slices.Sorted(slices.Values(countries))),
		cells:     make(map[string][]float64),
	}
	for _, c := range t.Countries {
		col := make([]float64, len(t.Years))
		for i := range col {
			col[i] = math.NaN()
		}
		t.cells[c] = col
	}

	seen := make(map[string]map[int]bool)
	for i, c := range countries {
		if seen[c] == nil {
			seen[c] = make(map[int]bool)
		}
		if seen[c][years[i]] {
			return nil, fmt.Errorf("%w: %s %d", ErrDuplicateEntry, c, years[i])
		}
		seen[c][years[i]] = true
		row, _ := slices.BinarySearch(t.Years, years[i])
		t.cells[c][row] = values[i]
	}
	return t, nil
}

// At returns the value for a year and country, NaN when missing.
func (t *Table) At(year int, country string) float64 {
	col, ok := t.cells[country]
	if !ok {
		return math.NaN()
	}
	row, found := slices.BinarySearch(t.Years, year)
	if !found {
		return math.NaN()
	}
	return col[row]
}

// Series returns the column of one country, NaN cells included.
func (t *Table) Series(country string) (Series, error) {
	col, ok := t.cells[country]
	if !ok {
		return Series{}, fmt.Errorf("%w: %q in %s", ErrUnknownCountry, country, t.Value)
	}
	s := Series{
		Name: country,
		X:    make([]float64, len(t.Years)),
		Y:    slices.Clone(col),
	}
	for i, y := range t.Years {
		s.X[i] = float64(y)
	}
	return s, nil
}
