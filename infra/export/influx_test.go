package export

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/ocv/core/curve"
	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/core/model"
)

func TestInfluxSinkRecordComparison(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(data)))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	now := time.Now()
	res := coreexport.ComparisonResult{
		RunID: "run-1",
		Time:  now,
		Comparison: curve.Comparison{
			RecordA: model.BatteryStateRecord{Label: "new"},
			RecordB: model.BatteryStateRecord{Label: "eol"},
			CurveA:  []model.CurveSample{{SoC: 0, Voltage: 3.0}},
			CurveB:  []model.CurveSample{{SoC: 0, Voltage: 2.5}},
		},
		Delta: []model.CurveSample{{SoC: 0, Voltage: 0.5}},
	}
	if err := sink.RecordComparison(res); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(bodies) != 3 {
		t.Fatalf("expected 3 writes, got %d: %#v", len(bodies), bodies)
	}
	p := write.NewPointWithMeasurement("ocv_curve").
		AddTag("label", "new").
		AddTag("run_id", "run-1").
		AddField("soc", 0.0).
		AddField("voltage", 3.0).
		SetTime(now)
	exp := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if bodies[0] != exp {
		t.Errorf("unexpected body: %s, want %s", bodies[0], exp)
	}
	d := write.NewPointWithMeasurement("ocv_delta").
		AddTag("run_id", "run-1").
		AddField("soc", 0.0).
		AddField("delta_v", 0.5).
		SetTime(now)
	expDelta := strings.TrimSpace(write.PointToLineProtocol(d, time.Nanosecond))
	if bodies[2] != expDelta {
		t.Errorf("unexpected delta body: %s, want %s", bodies[2], expDelta)
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
