package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ocv/core/curve"
	"github.com/kilianp07/ocv/infra/csvloader"
)

var fitCmd = &cobra.Command{
	Use:   "fit [samples.csv]",
	Short: "Fit fifth-order OCV coefficients to measured soc,voltage samples",
	Args:  cobra.ExactArgs(1),
	RunE:  runFit,
}

func init() {
	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	samples, err := csvloader.LoadSamples(args[0])
	if err != nil {
		return err
	}
	coeffs, err := curve.Fit(samples)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	return enc.Encode(coeffs)
}
