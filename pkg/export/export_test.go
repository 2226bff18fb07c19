package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kilianp07/ocv/core/curve"
	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/core/model"
)

func testResult(t *testing.T) coreexport.ComparisonResult {
	t.Helper()
	recA := model.BatteryStateRecord{Label: "new", Coefficients: []float64{3.0, 0.5, 0, 0, 0, 0}, SoH: 1}
	recB := model.BatteryStateRecord{Label: "eol", Coefficients: []float64{2.5, 0.3, 0, 0, 0, 0}, SoH: 0.8}
	cmp, err := curve.Compare(recA, recB, 3)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	return coreexport.ComparisonResult{
		RunID:      "run-1",
		Comparison: cmp,
		Delta:      curve.Delta(cmp),
		Summary:    curve.Summarize(cmp),
	}
}

func TestWriteComparisonCSV(t *testing.T) {
	res := testResult(t)
	var buf bytes.Buffer
	if err := WriteComparisonCSV(&buf, res); err != nil {
		t.Fatalf("write error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "soc,voltage_new,voltage_eol,delta_v" {
		t.Fatalf("header: %s", lines[0])
	}
	if lines[1] != "0,3,2.5,0.5" {
		t.Fatalf("first row: %s", lines[1])
	}
}

func TestWriteCurveCSV(t *testing.T) {
	samples := []model.CurveSample{{SoC: 0, Voltage: 3}, {SoC: 1, Voltage: 3.5}}
	var buf bytes.Buffer
	if err := WriteCurveCSV(&buf, samples); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := "soc,voltage\n0,3\n1,3.5\n"
	if buf.String() != want {
		t.Fatalf("output: %q, want %q", buf.String(), want)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	res := testResult(t)
	var buf bytes.Buffer
	if err := WriteJSON(&buf, res); err != nil {
		t.Fatalf("write error: %v", err)
	}
	var decoded coreexport.ComparisonResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Comparison.CurveA) != 3 {
		t.Fatalf("decoded: %+v", decoded)
	}
}
