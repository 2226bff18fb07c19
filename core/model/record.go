package model

import "fmt"

// CoefficientCount is the number of polynomial coefficients in an OCV model
// (degree five, ascending order).
const CoefficientCount = 6

// BatteryStateRecord is one row of the coefficient table: the open-circuit
// voltage polynomial of a battery in a given ageing state.
type BatteryStateRecord struct {
	Label        string    `json:"label"`        // state tag such as "new" or "eol", matched exactly
	Coefficients []float64 `json:"coefficients"` // ascending degree: V(z) = c0 + c1*z + ... + c5*z^5
	SoH          float64   `json:"soh"`          // state of health, used for display labelling only
}

// Validate checks that the record carries a full coefficient set. A short or
// padded vector is a data error, not a lower-degree model.
func (r BatteryStateRecord) Validate() error {
	if len(r.Coefficients) != CoefficientCount {
		return fmt.Errorf("record %q: expected %d coefficients, got %d", r.Label, CoefficientCount, len(r.Coefficients))
	}
	return nil
}

// CurveSample pairs a state-of-charge point with the model voltage at that
// point.
type CurveSample struct {
	SoC     float64 `json:"soc"`
	Voltage float64 `json:"voltage"`
}
