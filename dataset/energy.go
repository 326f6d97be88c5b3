// Package dataset loads the public energy and GDP datasets and reshapes
// them into per-country series.
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Value columns of the energy dataset.
const (
	Population            = "population"
	ElectricityGeneration = "electricity_generation"
	RenewablesElectricity = "renewables_electricity"
	FossilElectricity     = "fossil_electricity"
)

// EnergyValues lists the value columns kept by LoadEnergy.
var EnergyValues = []string{Population, ElectricityGeneration, RenewablesElectricity, FossilElectricity}

// World is the aggregate row name in both datasets.
const World = "World"

var nanValues = []string{"", "NA", "NaN"}

// Energy is the energy dataset restricted to countries with an ISO code.
type Energy struct {
	df dataframe.DataFrame
}

// ReadEnergyFile loads the energy CSV at path.
func ReadEnergyFile(path string) (*Energy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadEnergy(f)
}

// LoadEnergy reads an energy CSV with at least the columns country,
// iso_code, year and EnergyValues. Rows without an ISO code (continents,
// income groups) are dropped; the World aggregate carries one and stays.
func LoadEnergy(r io.Reader) (*Energy, error) {
	types := map[string]series.Type{
		"country":  series.String,
		"iso_code": series.String,
		"year":     series.Int,
	}
	for _, v := range EnergyValues {
		types[v] = series.Float
	}
	df := dataframe.ReadCSV(r,
		dataframe.WithTypes(types),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read energy csv: %w", df.Err)
	}

	cols := append([]string{"country", "iso_code", "year"}, EnergyValues...)
	names := df.Names()
	for _, c := range cols {
		if !slices.Contains(names, c) {
			return nil, fmt.Errorf("read energy csv: missing column %q", c)
		}
	}
	df = df.Select(cols).Filter(dataframe.F{
		Colname:    "iso_code",
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool { return !el.IsNA() },
	})
	if df.Err != nil {
		return nil, fmt.Errorf("filter energy data: %w", df.Err)
	}
	return &Energy{df: df}, nil
}

// Frame returns the underlying dataframe.
func (e *Energy) Frame() dataframe.DataFrame { return e.df }

// Pivot returns a year by country table of one of EnergyValues.
func (e *Energy) Pivot(value string) (*Table, error) {
	if !slices.Contains(EnergyValues, value) {
		return nil, fmt.Errorf("pivot: unknown value column %q", value)
	}
	years, err := e.df.Col("year").Int()
	if err != nil {
		return nil, fmt.Errorf("pivot %s: %w", value, err)
	}
	return pivot(value, e.df.Col("country").Records(), years, e.df.Col(value).Float())
}

// Snapshot returns one row per country (World excluded) for year, joined
// with the GDP of that year on the ISO code. Besides the energy values and
// gdp it carries the derived columns renewables_share (percent of
// generation), electricity_per_capita (kWh) and gdp_per_capita (USD).
// Rows are sorted by country.
func Snapshot(e *Energy, g *GDP, year int) (dataframe.DataFrame, error) {
	rows := e.df.
		Filter(dataframe.F{Colname: "year", Comparator: series.Eq, Comparando: year}).
		Filter(dataframe.F{Colname: "country", Comparator: series.Neq, Comparando: World})
	if rows.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("snapshot %d: %w", year, rows.Err)
	}
	gdp, err := g.Year(year)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	joined := rows.InnerJoin(gdp, "iso_code")
	if joined.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("snapshot %d: join gdp: %w", year, joined.Err)
	}

	gen := joined.Col(ElectricityGeneration).Float()
	ren := joined.Col(RenewablesElectricity).Float()
	pop := joined.Col(Population).Float()
	money := joined.Col(GDPColumn).Float()
	share := make([]float64, len(gen))
	perCapita := make([]float64, len(gen))
	gdpPerCapita := make([]float64, len(gen))
	for i := range gen {
		share[i] = ratio(ren[i], gen[i]) * 100
		// generation is in TWh, 1 TWh = 1e9 kWh
		perCapita[i] = ratio(gen[i]*1e9, pop[i])
		gdpPerCapita[i] = ratio(money[i], pop[i])
	}
	// the join puts the key first
	order := append([]string{"country", "iso_code", "year"}, EnergyValues...)
	order = append(order, GDPColumn, "renewables_share", "electricity_per_capita", "gdp_per_capita")
	joined = joined.
		Mutate(series.New(share, series.Float, "renewables_share")).
		Mutate(series.New(perCapita, series.Float, "electricity_per_capita")).
		Mutate(series.New(gdpPerCapita, series.Float, "gdp_per_capita")).
		Select(order).
		Arrange(dataframe.Sort("country"))
	if joined.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("snapshot %d: %w", year, joined.Err)
	}
	return joined, nil
}

func ratio(a, b float64) float64 {
	if b == 0 || math.IsNaN(b) {
		return math.NaN()
	}
	return a / b
}
