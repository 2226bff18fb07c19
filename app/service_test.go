package app

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/ocv/config"
	"github.com/kilianp07/ocv/core/curve"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	table := filepath.Join(dir, "coefficients.csv")
	data := "label,soh,c0,c1,c2,c3,c4,c5\n" +
		"new,1.0,3.0,0.5,0,0,0,0\n" +
		"eol,0.8,2.5,0.3,0,0,0,0\n"
	if err := os.WriteFile(table, []byte(data), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	cfg := &config.Config{Input: config.InputConfig{Path: table}}
	cfg.SetDefaults()
	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return svc
}

func TestServiceCompare(t *testing.T) {
	svc := testService(t)
	res, err := svc.Compare("new", "eol", 3)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if res.RunID == "" || res.Time.IsZero() {
		t.Fatalf("missing run metadata: %+v", res)
	}
	if len(res.Comparison.CurveA) != 3 || len(res.Delta) != 3 {
		t.Fatalf("lengths: %d, %d", len(res.Comparison.CurveA), len(res.Delta))
	}
	if math.Abs(res.Summary.EmptyDeltaV-0.5) > 1e-9 {
		t.Fatalf("empty delta: %v", res.Summary.EmptyDeltaV)
	}
}

func TestServiceCompareUnknownLabel(t *testing.T) {
	svc := testService(t)
	if _, err := svc.Compare("new", "mid", 3); !errors.Is(err, curve.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceSample(t *testing.T) {
	svc := testService(t)
	rec, samples, err := svc.Sample("eol", 5)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if rec.SoH != 0.8 || len(samples) != 5 {
		t.Fatalf("rec %+v, %d samples", rec, len(samples))
	}
}
