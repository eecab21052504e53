// Command eqpool equilibrates the elementary steps of a reaction
// scenario and reports, per species pair, the characteristic timescale
// at which the pair merges into one equilibrium pool.
//
// Usage:
//
//	eqpool scan scenario.yaml
//	eqpool scan --verbose scenario.yaml
//
// The scenario file lists species (initial concentration, optional
// thermo) and observed reactions (rate constants); see scenario.go for
// the schema. The scan prints a species×species matrix of log10 pooling
// times, "·" marking pairs that never pool.
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/eqpool/connection"
	"github.com/katalvlaran/eqpool/pooling"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "eqpool",
	Short:         "Equilibrium pooling analysis for reaction scenarios",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan <scenario.yaml>",
	Short: "Sweep pooling thresholds and print the pooling-time matrix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()
		return runScan(cmd.OutOrStdout(), args[0], logger)
	},
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runScan(out io.Writer, path string, logger *zap.Logger) error {
	scenario, err := LoadScenario(path)
	if err != nil {
		return err
	}
	params, err := scenario.Params()
	if err != nil {
		return err
	}

	conns, failures := connection.EvaluateAll(scenario.Thermo(), scenario.Concentrations(), params, nil)
	for _, fail := range failures {
		logger.Warn("connection skipped", zap.Error(fail))
	}
	logger.Info("connections evaluated",
		zap.Int("evaluated", len(conns)),
		zap.Int("failed", len(failures)),
		zap.Float64("temperature", scenario.Temperature))

	matrix, err := pooling.ScanPoolingTimes(conns, len(scenario.Species))
	if err != nil {
		return err
	}
	return printMatrix(out, scenario.Names(), matrix)
}

// printMatrix renders the symmetric pooling-time matrix with species
// names on both axes. Cells hold the log10 exponent of the pooling
// time; undefined cells render as "·".
func printMatrix(out io.Writer, names []string, m *pooling.Matrix) error {
	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
	fmt.Fprint(w, "species")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, name := range names {
		fmt.Fprint(w, name)
		for j := range names {
			if v, ok := m.At(i, j); ok {
				fmt.Fprintf(w, "\t%g", v)
			} else {
				fmt.Fprint(w, "\t·")
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func main() {
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "development-style logging")
	rootCmd.AddCommand(scanCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "eqpool:", err)
		os.Exit(1)
	}
}
