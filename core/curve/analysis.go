package curve

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/ocv/core/model"
)

// Delta returns the point-wise voltage difference, curve A minus curve B, on
// the shared SoC grid.
func Delta(c Comparison) []model.CurveSample {
	out := make([]model.CurveSample, len(c.CurveA))
	for i, s := range c.CurveA {
		out[i] = model.CurveSample{SoC: s.SoC, Voltage: s.Voltage - c.CurveB[i].Voltage}
	}
	return out
}

// Summary condenses a comparison into the figures a report annotates.
type Summary struct {
	MeanAbsDeltaV float64 `json:"mean_abs_delta_v"`
	MaxAbsDeltaV  float64 `json:"max_abs_delta_v"`
	MaxDeltaSoC   float64 `json:"max_delta_soc"` // SoC at which the largest gap occurs
	EmptyDeltaV   float64 `json:"empty_delta_v"` // delta at SoC 0
	FullDeltaV    float64 `json:"full_delta_v"`  // delta at SoC 1
}

// Summarize computes delta statistics for a comparison produced by Compare,
// which guarantees at least two samples per curve.
func Summarize(c Comparison) Summary {
	d := Delta(c)
	abs := make([]float64, len(d))
	maxIdx := 0
	for i, s := range d {
		abs[i] = math.Abs(s.Voltage)
		if abs[i] > abs[maxIdx] {
			maxIdx = i
		}
	}
	return Summary{
		MeanAbsDeltaV: stat.Mean(abs, nil),
		MaxAbsDeltaV:  abs[maxIdx],
		MaxDeltaSoC:   d[maxIdx].SoC,
		EmptyDeltaV:   d[0].Voltage,
		FullDeltaV:    d[len(d)-1].Voltage,
	}
}
