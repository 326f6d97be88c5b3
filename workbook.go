package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"energyplot/dataset"
)

// column is one column of the World sheet. value returns NaN for years
// without data.
type column struct {
	header string
	years  []int
	value  func(year int) float64
}

// workbook exports the world series and the per-country snapshot of the
// configured year and returns the path written.
func (a *app) workbook() (string, error) {
	energy, err := dataset.ReadEnergyFile(filepath.Join(a.cfg.DataDir, "energy_data.csv"))
	if err != nil {
		return "", fmt.Errorf("read energy data: %w", err)
	}
	gdp, err := dataset.ReadGDPFile(filepath.Join(a.cfg.DataDir, "gdp.csv"))
	if err != nil {
		return "", fmt.Errorf("read gdp data: %w", err)
	}

	var cols []column
	for _, c := range []struct {
		header, name string
		div          float64
	}{
		{"Population (billion)", dataset.Population, 1e9},
		{"Electricity generation (TWh)", dataset.ElectricityGeneration, 1},
		{"Fossil electricity (TWh)", dataset.FossilElectricity, 1},
		{"Renewable electricity (TWh)", dataset.RenewablesElectricity, 1},
	} {
		t, err := energy.Pivot(c.name)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.name, err)
		}
		cols = append(cols, column{
			header: c.header,
			years:  t.Years,
			value:  func(year int) float64 { return t.At(year, dataset.World) / c.div },
		})
	}
	g, err := gdp.Series(dataset.World)
	if err != nil {
		return "", fmt.Errorf("gdp: %w", err)
	}
	g = g.Scale(1e12)
	byYear := make(map[int]float64, g.Len())
	for i, x := range g.X {
		byYear[int(x)] = g.Y[i]
	}
	cols = append(cols, column{
		header: "GDP (trillion USD)",
		years:  gdp.Years(),
		value: func(year int) float64 {
			if v, ok := byYear[year]; ok {
				return v
			}
			return math.NaN()
		},
	})

	snap, err := dataset.Snapshot(energy, gdp, a.cfg.Year)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(a.cfg.OutDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(a.cfg.OutDir, "energy_summary.xlsx")
	if err := writeWorkbook(path, cols, snap, a.cfg.Year); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	a.log.Info("workbook written",
		zap.String("path", path),
		zap.Int("countries", snap.Nrow()),
		zap.Int("year", a.cfg.Year))
	return path, nil
}

func snapshotSheet(year int) string { return fmt.Sprintf("Snapshot %d", year) }

func writeWorkbook(path string, cols []column, snap dataframe.DataFrame, year int) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	const world = "World"
	if err := f.SetSheetName("Sheet1", world); err != nil {
		return err
	}
	headers := []string{"Year"}
	for _, c := range cols {
		headers = append(headers, c.header)
	}
	if err := writeHeader(f, world, headers, bold); err != nil {
		return err
	}

	// one row per year present in any column
	var years []int
	for _, c := range cols {
		years = append(years, c.years...)
	}
	slices.Sort(years)
	years = slices.Compact(years)
	for r, y := range years {
		row := r + 2
		if err := setCell(f, world, 1, row, y); err != nil {
			return err
		}
		for i, c := range cols {
			v := c.value(y)
			if math.IsNaN(v) {
				continue
			}
			if err := setCell(f, world, i+2, row, v); err != nil {
				return err
			}
		}
	}

	sheet := snapshotSheet(year)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	names := snap.Names()
	if err := writeHeader(f, sheet, names, bold); err != nil {
		return err
	}
	for i, name := range names {
		col := snap.Col(name)
		switch col.Type() {
		case series.String:
			for r, v := range col.Records() {
				if err := setCell(f, sheet, i+1, r+2, v); err != nil {
					return err
				}
			}
			continue
		case series.Int:
			if ints, err := col.Int(); err == nil {
				for r, v := range ints {
					if err := setCell(f, sheet, i+1, r+2, v); err != nil {
						return err
					}
				}
				continue
			}
		}
		for r, v := range col.Float() {
			if math.IsNaN(v) {
				continue
			}
			if err := setCell(f, sheet, i+1, r+2, v); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 20); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, name, v)
}
