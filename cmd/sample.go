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
	sampleLabel   string
	sampleSamples int
	sampleFormat  string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Sample the OCV curve of a single battery state",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().StringVar(&sampleLabel, "label", "", "state label (default from config)")
	sampleCmd.Flags().IntVar(&sampleSamples, "samples", 0, "number of SoC samples (default from config)")
	sampleCmd.Flags().StringVar(&sampleFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if sampleLabel == "" {
		sampleLabel = cfg.Compare.LabelA
	}
	if sampleSamples == 0 {
		sampleSamples = cfg.Compare.SampleCount
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("sample-command").Errorf("service close: %v", err)
		}
	}()

	rec, samples, err := svc.Sample(sampleLabel, sampleSamples)
	if err != nil {
		return err
	}
	switch sampleFormat {
	case "json":
		return export.WriteSampledJSON(os.Stdout, export.SampledCurve{Record: rec, Samples: samples})
	case "csv":
		return export.WriteCurveCSV(os.Stdout, samples)
	default:
		return fmt.Errorf("unknown format %q", sampleFormat)
	}
}
