package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every setting of a run. Each field can come from a flag, an
// ENERGYPLOT_* environment variable or the YAML config file, in that order
// of precedence.
type Config struct {
	DataDir string `mapstructure:"data-dir" yaml:"data-dir"`
	OutDir  string `mapstructure:"out-dir" yaml:"out-dir"`

	// Year selects the per-country snapshot of the workbook.
	Year int `mapstructure:"year" yaml:"year"`

	// Format is the figure file format: pdf, png, svg, eps, jpg or tif.
	Format string `mapstructure:"format" yaml:"format"`

	Width    float64 `mapstructure:"width" yaml:"width"`
	Height   float64 `mapstructure:"height" yaml:"height"`
	FontSize float64 `mapstructure:"font-size" yaml:"font-size"`

	// DPI and RampRows configure the gradient fills.
	DPI      float64 `mapstructure:"dpi" yaml:"dpi"`
	RampRows int     `mapstructure:"ramp-rows" yaml:"ramp-rows"`
}

var defaults = Config{
	DataDir:  "data",
	OutDir:   "figures",
	Year:     2015,
	Format:   "pdf",
	Width:    18,
	Height:   6,
	FontSize: 17,
	DPI:      144,
	RampRows: 100,
}

// addConfigFlags registers one flag per Config field.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("data-dir", defaults.DataDir, "directory holding energy_data.csv and gdp.csv")
	fs.String("out-dir", defaults.OutDir, "directory the figure and workbook are written to")
	fs.Int("year", defaults.Year, "year of the per-country snapshot")
	fs.String("format", defaults.Format, "figure format (pdf, png, svg, eps, jpg, tif)")
	fs.Float64("width", defaults.Width, "figure width in inches")
	fs.Float64("height", defaults.Height, "figure height in inches")
	fs.Float64("font-size", defaults.FontSize, "axis label font size in points")
	fs.Float64("dpi", defaults.DPI, "raster resolution of the gradient fills")
	fs.Int("ramp-rows", defaults.RampRows, "vertical resolution of the gradient ramp")
}

// loadConfig resolves the configuration from fs, the environment and, if
// file is not empty, a YAML file.
func loadConfig(fs *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENERGYPLOT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RampRows < 2 {
		return Config{}, fmt.Errorf("ramp-rows must be at least 2, got %d", cfg.RampRows)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("figure size must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	return cfg, nil
}
