package scenarios

import (
	"fmt"
	"math"

	"github.com/kilianp07/ocv/core/curve"
	"github.com/kilianp07/ocv/core/model"
)

const tolerance = 1e-9

// Run executes the scenario and reports the first mismatch.
func (sc *Scenario) Run() error {
	records := make([]model.BatteryStateRecord, 0, len(sc.Records))
	for _, def := range sc.Records {
		records = append(records, def.ToModel())
	}
	recA, err := curve.FindRecordByLabel(records, sc.Compare.A)
	if err != nil {
		return err
	}
	recB, err := curve.FindRecordByLabel(records, sc.Compare.B)
	if err != nil {
		return err
	}
	cmp, err := curve.Compare(recA, recB, sc.Compare.Samples)
	if err != nil {
		return err
	}
	if len(sc.Expect.SoC) != len(cmp.CurveA) {
		return fmt.Errorf("%s: expected %d samples, got %d", sc.Name, len(sc.Expect.SoC), len(cmp.CurveA))
	}
	for i := range sc.Expect.SoC {
		if math.Abs(cmp.CurveA[i].SoC-sc.Expect.SoC[i]) > tolerance {
			return fmt.Errorf("%s: soc[%d] = %v, want %v", sc.Name, i, cmp.CurveA[i].SoC, sc.Expect.SoC[i])
		}
		if math.Abs(cmp.CurveA[i].Voltage-sc.Expect.VoltageA[i]) > tolerance {
			return fmt.Errorf("%s: voltage_a[%d] = %v, want %v", sc.Name, i, cmp.CurveA[i].Voltage, sc.Expect.VoltageA[i])
		}
		if math.Abs(cmp.CurveB[i].Voltage-sc.Expect.VoltageB[i]) > tolerance {
			return fmt.Errorf("%s: voltage_b[%d] = %v, want %v", sc.Name, i, cmp.CurveB[i].Voltage, sc.Expect.VoltageB[i])
		}
	}
	return nil
}
