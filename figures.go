package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"energyplot/dataset"
	"energyplot/gradient"
	"energyplot/surface"
)

// electricitySeries are drawn as gradient fills, in this order.
var electricitySeries = []struct {
	column string
	color  string
	label  string
}{
	{dataset.ElectricityGeneration, "tab:blue", "Total"},
	{dataset.FossilElectricity, "tab:orange", "Fossil"},
	{dataset.RenewablesElectricity, "tab:green", "Renewable"},
}

// figures renders the three-panel figure and returns its path.
func (a *app) figures() (string, error) {
	energy, err := dataset.ReadEnergyFile(filepath.Join(a.cfg.DataDir, "energy_data.csv"))
	if err != nil {
		return "", fmt.Errorf("read energy data: %w", err)
	}
	gdp, err := dataset.ReadGDPFile(filepath.Join(a.cfg.DataDir, "gdp.csv"))
	if err != nil {
		return "", fmt.Errorf("read gdp data: %w", err)
	}
	a.log.Info("datasets loaded",
		zap.Int("energyRows", energy.Frame().Nrow()),
		zap.Int("gdpYears", len(gdp.Years())))

	r := gradient.Renderer{Rows: a.cfg.RampRows, DPI: a.cfg.DPI}
	pop, err := populationAxes(energy)
	if err != nil {
		return "", err
	}
	money, err := gdpAxes(gdp)
	if err != nil {
		return "", err
	}
	elec, err := electricityAxes(energy, r)
	if err != nil {
		return "", err
	}

	plots := []*plot.Plot{pop.Plot, money.Plot, elec.Plot}
	for _, p := range plots {
		styleText(p, vg.Points(a.cfg.FontSize))
	}

	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.cfg.OutDir, "population_gdp."+a.cfg.Format)
	w, h := vg.Length(a.cfg.Width)*vg.Inch, vg.Length(a.cfg.Height)*vg.Inch
	if err := saveFigure(plots, w, h, path); err != nil {
		return "", fmt.Errorf("save figure: %w", err)
	}
	a.log.Info("figure written", zap.String("path", path))
	return path, nil
}

func worldSeries(e *dataset.Energy, column string, div float64) (dataset.Series, error) {
	t, err := e.Pivot(column)
	if err != nil {
		return dataset.Series{}, err
	}
	s, err := t.Series(dataset.World)
	if err != nil {
		return dataset.Series{}, err
	}
	return s.DropNaN().Scale(div), nil
}

func populationAxes(e *dataset.Energy) (*surface.Axes, error) {
	s, err := worldSeries(e, dataset.Population, 1e9)
	if err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}
	ax := surface.NewAxes()
	if _, err := ax.AddLine(s.XYs(), surface.Color(surface.Tableau[0]), surface.Label("Population")); err != nil {
		return nil, fmt.Errorf("population: %w", err)
	}
	ax.Plot.X.Label.Text = "Year"
	ax.Plot.Y.Label.Text = "Population (Billion)"
	ax.SetXLim(1900, 2020)
	ax.Plot.X.Tick.Marker = yearTicks(1900, 2020, 20)
	ax.Plot.Legend.Top = true
	ax.Plot.Legend.Left = true
	return ax, nil
}

func gdpAxes(g *dataset.GDP) (*surface.Axes, error) {
	s, err := g.Series(dataset.World)
	if err != nil {
		return nil, fmt.Errorf("gdp: %w", err)
	}
	ax := surface.NewAxes()
	if _, err := ax.AddLine(s.DropNaN().Scale(1e12).XYs(), surface.Color(surface.Tableau[1]), surface.Label("GDP")); err != nil {
		return nil, fmt.Errorf("gdp: %w", err)
	}
	ax.Plot.X.Label.Text = "Year"
	ax.Plot.Y.Label.Text = "GDP (Trillion USD)"
	ax.Plot.Y.Scale = plot.LogScale{}
	ax.Plot.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	ax.SetXLim(1900, 2020)
	ax.SetYLim(0.1, 100)
	ax.Plot.X.Tick.Marker = yearTicks(1900, 2020, 20)
	ax.Plot.Legend.Top = true
	ax.Plot.Legend.Left = true
	return ax, nil
}

func electricityAxes(e *dataset.Energy, r gradient.Renderer) (*surface.Axes, error) {
	ax := surface.NewAxes()
	for _, es := range electricitySeries {
		s, err := worldSeries(e, es.column, 1e3)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", es.column, err)
		}
		fill, err := surface.ParseColor(es.color)
		if err != nil {
			return nil, err
		}
		if _, _, err := r.Render(s.X, s.Y, fill, ax, surface.Label(es.label)); err != nil {
			return nil, fmt.Errorf("%s: %w", es.column, err)
		}
	}
	ax.Plot.X.Label.Text = "Year"
	ax.Plot.Y.Label.Text = "Electricity Consumption (PWh)"
	ax.SetXLim(1990, 2020)
	ax.Plot.Legend.Top = true
	ax.Plot.Legend.Left = true
	return ax, nil
}

func yearTicks(from, to, step int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for y := from; y <= to; y += step {
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}

func styleText(p *plot.Plot, size vg.Length) {
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = size
		ax.Tick.Label.Font.Size = size * 0.8
	}
	p.Legend.TextStyle.Font.Size = size * 0.8
	p.BackgroundColor = color.White
}

// saveFigure lays plots out in one row and writes them to path. The format
// follows the file extension.
func saveFigure(plots []*plot.Plot, w, h vg.Length, path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	c, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Inch / 2,
		PadTop:    vg.Inch / 4,
		PadBottom: vg.Inch / 4,
		PadLeft:   vg.Inch / 4,
		PadRight:  vg.Inch / 4,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, draw.New(c))
	for i, p := range plots {
		p.Draw(canvases[0][i])
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
