package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// GDPColumn is the name of the GDP column returned by GDP.Year.
const GDPColumn = "gdp"

// GDP is the World Bank GDP table: one row per country, one column per
// year, values in current US dollars.
type GDP struct {
	df    dataframe.DataFrame
	years []int
}

// ReadGDPFile loads the GDP CSV at path.
func ReadGDPFile(path string) (*GDP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadGDP(f)
}

// LoadGDP reads a World Bank indicator CSV. Everything before the
// "Country Name" header row is skipped, and only the country name, the
// country code and the year columns are kept.
func LoadGDP(r io.Reader) (*GDP, error) {
	br := bufio.NewReader(r)
	var header string
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimPrefix(line, "\ufeff")
		if strings.HasPrefix(trimmed, `"Country Name"`) || strings.HasPrefix(trimmed, "Country Name") {
			header = trimmed
			break
		}
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read gdp csv: no \"Country Name\" header row")
		}
		if err != nil {
			return nil, fmt.Errorf("read gdp csv: %w", err)
		}
	}

	df := dataframe.ReadCSV(io.MultiReader(strings.NewReader(header), br),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nanValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read gdp csv: %w", df.Err)
	}

	g := &GDP{}
	cols := []string{"Country Name", "Country Code"}
	for _, name := range df.Names() {
		if y, err := strconv.Atoi(name); err == nil {
			g.years = append(g.years, y)
			cols = append(cols, name)
		}
	}
	names := df.Names()
	if !slices.Contains(names, "Country Name") || !slices.Contains(names, "Country Code") {
		return nil, errors.New("read gdp csv: missing country columns")
	}
	if len(g.years) == 0 {
		return nil, errors.New("read gdp csv: no year columns")
	}
	g.df = df.Select(cols)
	if g.df.Err != nil {
		return nil, fmt.Errorf("select gdp columns: %w", g.df.Err)
	}
	return g, nil
}

// Years returns the years covered by the table.
func (g *GDP) Years() []int { return slices.Clone(g.years) }

// Series returns the GDP of one country over all years, NaN where missing.
func (g *GDP) Series(country string) (Series, error) {
	row := g.df.Filter(dataframe.F{Colname: "Country Name", Comparator: series.Eq, Comparando: country})
	if row.Err != nil {
		return Series{}, fmt.Errorf("gdp of %q: %w", country, row.Err)
	}
	if row.Nrow() == 0 {
		return Series{}, fmt.Errorf("%w: %q in gdp", ErrUnknownCountry, country)
	}
	s := Series{Name: country}
	for _, y := range g.years {
		s.X = append(s.X, float64(y))
		s.Y = append(s.Y, row.Col(strconv.Itoa(y)).Float()[0])
	}
	return s, nil
}

// Year returns a two column frame, iso_code and GDPColumn, for one year.
func (g *GDP) Year(year int) (dataframe.DataFrame, error) {
	if !slices.Contains(g.years, year) {
		return dataframe.DataFrame{}, fmt.Errorf("gdp: no data for %d", year)
	}
	codes := g.df.Col("Country Code").Records()
	values := g.df.Col(strconv.Itoa(year)).Float()
	return dataframe.New(
		series.New(codes, series.String, "iso_code"),
		series.New(values, series.Float, GDPColumn),
	), nil
}
