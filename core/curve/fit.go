package curve

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/ocv/core/model"
)

// Fit computes the least-squares ascending-degree coefficients of a
// fifth-order polynomial through the measured samples. At least six samples
// with distinct SoC values are required for the system to be determined.
func Fit(samples []model.CurveSample) ([]float64, error) {
	if len(samples) < model.CoefficientCount {
		return nil, invalidArgf("need at least %d samples to fit, got %d", model.CoefficientCount, len(samples))
	}
	a := mat.NewDense(len(samples), model.CoefficientCount, nil)
	b := mat.NewVecDense(len(samples), nil)
	for i, s := range samples {
		p := 1.0
		for j := 0; j < model.CoefficientCount; j++ {
			a.Set(i, j, p)
			p *= s.SoC
		}
		b.SetVec(i, s.Voltage)
	}
	var qr mat.QR
	qr.Factorize(a)
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}
	coeffs := make([]float64, model.CoefficientCount)
	for i := range coeffs {
		coeffs[i] = x.AtVec(i)
	}
	return coeffs, nil
}
