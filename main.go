// Command energyplot renders world population, GDP and electricity charts
// from the OWID energy dataset and the World Bank GDP table, and exports the
// numbers behind them to a workbook.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type app struct {
	cfg Config
	log *zap.Logger
}

func main() {
	a := &app{}
	if err := a.rootCmd().Execute(); err != nil {
		if a.log != nil {
			a.log.Error("energyplot failed", zap.Error(err))
			_ = a.log.Sync()
		} else {
			fmt.Fprintln(os.Stderr, "energyplot:", err)
		}
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *app) rootCmd() *cobra.Command {
	var (
		configFile string
		verbose    bool
	)
	root := &cobra.Command{
		Use:           "energyplot",
		Short:         "Charts of world population, GDP and electricity generation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log == nil {
				l, err := newLogger(verbose)
				if err != nil {
					return fmt.Errorf("init logger: %w", err)
				}
				a.log = l
			}
			cfg, err := loadConfig(cmd.Root().PersistentFlags(), configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.Debug("configuration",
				zap.String("dataDir", cfg.DataDir),
				zap.String("outDir", cfg.OutDir),
				zap.Int("year", cfg.Year),
				zap.String("format", cfg.Format))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")
	addConfigFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "figures",
			Short: "Render the population, GDP and electricity figure",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := a.figures()
				if err != nil {
					return err
				}
				printOutputs(cmd, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "workbook",
			Short: "Export the world series and a per-country snapshot to xlsx",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := a.workbook()
				if err != nil {
					return err
				}
				printOutputs(cmd, path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "all",
			Short: "Render the figure and export the workbook",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fig, err := a.figures()
				if err != nil {
					return err
				}
				book, err := a.workbook()
				if err != nil {
					return err
				}
				printOutputs(cmd, fig, book)
				return nil
			},
		},
		&cobra.Command{
			Use:   "config",
			Short: "Print the effective configuration as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(a.cfg)
			},
		},
	)
	return root
}

func printOutputs(cmd *cobra.Command, paths ...string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "✅ Done")
	fmt.Fprintln(out, "📁 File Output:")
	for _, p := range paths {
		fmt.Fprintf(out, "   - %s\n", p)
	}
}
