// Package curve evaluates fifth-order open-circuit-voltage polynomials and
// compares battery states over a shared state-of-charge grid. All functions
// are pure; values may be shared freely across goroutines.
package curve

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/ocv/core/model"
)

// Evaluate computes V(soc) for ascending-degree coefficients. The
// accumulation runs highest degree first so no explicit powers of soc are
// formed. soc is not range checked: the polynomial is defined for any real
// input and callers keep to [0,1] by convention.
func Evaluate(coefficients []float64, soc float64) float64 {
	acc := 0.0
	for i := len(coefficients) - 1; i >= 0; i-- {
		acc = acc*soc + coefficients[i]
	}
	return acc
}

// SampleCurve evaluates the model on sampleCount equally spaced SoC points
// spanning [0,1], both endpoints included.
func SampleCurve(coefficients []float64, sampleCount int) ([]model.CurveSample, error) {
	if len(coefficients) != model.CoefficientCount {
		return nil, invalidArgf("expected %d coefficients, got %d", model.CoefficientCount, len(coefficients))
	}
	if sampleCount < 2 {
		return nil, invalidArgf("sample count must be at least 2, got %d", sampleCount)
	}
	grid := floats.Span(make([]float64, sampleCount), 0, 1)
	samples := make([]model.CurveSample, sampleCount)
	for i, soc := range grid {
		samples[i] = model.CurveSample{SoC: soc, Voltage: Evaluate(coefficients, soc)}
	}
	return samples, nil
}

// FindRecordByLabel returns the first record whose label matches exactly.
// Later rows carrying the same label are ignored.
func FindRecordByLabel(records []model.BatteryStateRecord, label string) (model.BatteryStateRecord, error) {
	for _, r := range records {
		if r.Label == label {
			return r, nil
		}
	}
	return model.BatteryStateRecord{}, fmt.Errorf("label %q: %w", label, ErrNotFound)
}

// Comparison holds two curves sampled on the identical SoC grid, together
// with the records they came from for labelling.
type Comparison struct {
	RecordA model.BatteryStateRecord `json:"record_a"`
	RecordB model.BatteryStateRecord `json:"record_b"`
	CurveA  []model.CurveSample      `json:"curve_a"`
	CurveB  []model.CurveSample      `json:"curve_b"`
}

// Compare samples both records over the same grid so that index i carries
// the same SoC in both curves.
func Compare(recA, recB model.BatteryStateRecord, sampleCount int) (Comparison, error) {
	if err := recA.Validate(); err != nil {
		return Comparison{}, InvalidArgumentError{Reason: err.Error()}
	}
	if err := recB.Validate(); err != nil {
		return Comparison{}, InvalidArgumentError{Reason: err.Error()}
	}
	a, err := SampleCurve(recA.Coefficients, sampleCount)
	if err != nil {
		return Comparison{}, err
	}
	b, err := SampleCurve(recB.Coefficients, sampleCount)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{RecordA: recA, RecordB: recB, CurveA: a, CurveB: b}, nil
}
