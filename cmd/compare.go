package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/ocv/app"
	"github.com/kilianp07/ocv/config"
	"github.com/kilianp07/ocv/infra/logger"
	"github.com/kilianp07/ocv/pkg/export"
)

var (
	compareLabelA  string
	compareLabelB  string
	compareSamples int
	compareFormat  string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the OCV curves of two battery states",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareLabelA, "label-a", "", "first state label (default from config)")
	compareCmd.Flags().StringVar(&compareLabelB, "label-b", "", "second state label (default from config)")
	compareCmd.Flags().IntVar(&compareSamples, "samples", 0, "number of SoC samples (default from config)")
	compareCmd.Flags().StringVar(&compareFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if compareLabelA == "" {
		compareLabelA = cfg.Compare.LabelA
	}
	if compareLabelB == "" {
		compareLabelB = cfg.Compare.LabelB
	}
	if compareSamples == 0 {
		compareSamples = cfg.Compare.SampleCount
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("compare-command").Errorf("service close: %v", err)
		}
	}()

	res, err := svc.Compare(compareLabelA, compareLabelB, compareSamples)
	if err != nil {
		return err
	}
	switch compareFormat {
	case "json":
		return export.WriteJSON(os.Stdout, res)
	case "csv":
		return export.WriteComparisonCSV(os.Stdout, res)
	default:
		return fmt.Errorf("unknown format %q", compareFormat)
	}
}
