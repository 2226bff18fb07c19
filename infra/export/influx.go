package export

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/core/model"
	"github.com/kilianp07/ocv/infra/logger"
)

// InfluxConfig defines the InfluxDB sink connection.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// InfluxSink writes comparison curves to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coreexport.CurveSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coreexport.NopSink{}
	}
	return sink
}

// RecordComparison writes one point per sample of both curves plus the
// point-wise delta, all tagged with the run ID.
func (s *InfluxSink) RecordComparison(res coreexport.ComparisonResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	curves := []struct {
		label   string
		samples []model.CurveSample
	}{
		{res.Comparison.RecordA.Label, res.Comparison.CurveA},
		{res.Comparison.RecordB.Label, res.Comparison.CurveB},
	}
	for _, c := range curves {
		for _, sample := range c.samples {
			p := write.NewPointWithMeasurement("ocv_curve").
				AddTag("label", c.label).
				AddTag("run_id", res.RunID).
				AddField("soc", sample.SoC).
				AddField("voltage", round3(sample.Voltage)).
				SetTime(res.Time)
			if err := s.writeAPI.WritePoint(ctx, p); err != nil {
				return err
			}
		}
	}
	for _, sample := range res.Delta {
		p := write.NewPointWithMeasurement("ocv_delta").
			AddTag("run_id", res.RunID).
			AddField("soc", sample.SoC).
			AddField("delta_v", round3(sample.Voltage)).
			SetTime(res.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
