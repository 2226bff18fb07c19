// Package export renders sampled curves in JSON or CSV for downstream
// plotting tools.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/core/model"
)

// SampledCurve pairs a record with its sampled curve for output.
type SampledCurve struct {
	Record  model.BatteryStateRecord `json:"record"`
	Samples []model.CurveSample      `json:"samples"`
}

// WriteJSON writes the comparison result to w in indented JSON format.
func WriteJSON(w io.Writer, res coreexport.ComparisonResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteSampledJSON writes a single sampled curve to w in indented JSON
// format.
func WriteSampledJSON(w io.Writer, sc SampledCurve) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sc)
}

// WriteCurveCSV writes a single sampled curve with a soc,voltage header.
func WriteCurveCSV(w io.Writer, samples []model.CurveSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"soc", "voltage"}); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			formatFloat(s.SoC),
			formatFloat(s.Voltage),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV writes both curves and their delta side by side, one
// row per shared SoC point. Column names carry the record labels.
func WriteComparisonCSV(w io.Writer, res coreexport.ComparisonResult) error {
	cw := csv.NewWriter(w)
	header := []string{
		"soc",
		"voltage_" + res.Comparison.RecordA.Label,
		"voltage_" + res.Comparison.RecordB.Label,
		"delta_v",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range res.Comparison.CurveA {
		rec := []string{
			formatFloat(res.Comparison.CurveA[i].SoC),
			formatFloat(res.Comparison.CurveA[i].Voltage),
			formatFloat(res.Comparison.CurveB[i].Voltage),
			formatFloat(res.Delta[i].Voltage),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
