// Package app wires configuration, record loading, metrics and result sinks.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/ocv/api/curves"
	"github.com/kilianp07/ocv/config"
	"github.com/kilianp07/ocv/core/curve"
	coreexport "github.com/kilianp07/ocv/core/export"
	"github.com/kilianp07/ocv/core/model"
	"github.com/kilianp07/ocv/infra/csvloader"
	infraexport "github.com/kilianp07/ocv/infra/export"
	"github.com/kilianp07/ocv/infra/logger"
	"github.com/kilianp07/ocv/infra/metrics"
)

// Service holds the loaded record table and the configured sinks.
type Service struct {
	Records []model.BatteryStateRecord

	cfg  *config.Config
	sink coreexport.CurveSink
	met  *metrics.PromMetrics
	log  logger.Logger
}

// New loads the coefficient table and builds the configured sinks.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	records, err := csvloader.Load(cfg.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	logg.Infof("loaded %d battery state records from %s", len(records), cfg.Input.Path)

	var sinks []coreexport.CurveSink
	if cfg.Export.Influx.Enabled {
		sinks = append(sinks, infraexport.NewInfluxSinkWithFallback(cfg.Export.Influx))
	}
	if cfg.Export.MQTT.Enabled {
		sink, err := infraexport.NewMQTTSink(cfg.Export.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	var sink coreexport.CurveSink = coreexport.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = infraexport.NewMultiSink(sinks...)
	}

	var met *metrics.PromMetrics
	if cfg.Metrics.PrometheusEnabled {
		met, err = metrics.NewPromMetrics()
		if err != nil {
			return nil, fmt.Errorf("prom metrics: %w", err)
		}
	}

	return &Service{Records: records, cfg: cfg, sink: sink, met: met, log: logg}, nil
}

// Compare runs one comparison between the two labels, records the result on
// the configured sinks and returns it. Sink failures are logged, not fatal:
// the comparison itself succeeded.
func (s *Service) Compare(labelA, labelB string, sampleCount int) (coreexport.ComparisonResult, error) {
	recA, err := curve.FindRecordByLabel(s.Records, labelA)
	if err != nil {
		return coreexport.ComparisonResult{}, err
	}
	recB, err := curve.FindRecordByLabel(s.Records, labelB)
	if err != nil {
		return coreexport.ComparisonResult{}, err
	}
	cmp, err := curve.Compare(recA, recB, sampleCount)
	if err != nil {
		return coreexport.ComparisonResult{}, err
	}
	res := coreexport.ComparisonResult{
		RunID:      uuid.NewString(),
		Time:       time.Now().UTC(),
		Comparison: cmp,
		Delta:      curve.Delta(cmp),
		Summary:    curve.Summarize(cmp),
	}
	if s.met != nil {
		s.met.ObserveComparison(labelA, labelB)
	}
	if err := s.sink.RecordComparison(res); err != nil {
		s.log.Errorf("record comparison %s: %v", res.RunID, err)
	}
	return res, nil
}

// Sample evaluates one labelled curve.
func (s *Service) Sample(label string, sampleCount int) (model.BatteryStateRecord, []model.CurveSample, error) {
	rec, err := curve.FindRecordByLabel(s.Records, label)
	if err != nil {
		return model.BatteryStateRecord{}, nil, err
	}
	samples, err := curve.SampleCurve(rec.Coefficients, sampleCount)
	if err != nil {
		return model.BatteryStateRecord{}, nil, err
	}
	if s.met != nil {
		s.met.ObserveSampling(label)
	}
	return rec, samples, nil
}

// Run serves the HTTP API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	handler := curves.New(s.Records, s.met, logger.New("api")).Mux()
	srv := &http.Server{Addr: s.cfg.API.Address, Handler: handler}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddress); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("serving curve API on %s", s.cfg.API.Address)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases the sinks.
func (s *Service) Close() error { return s.sink.Close() }
