// Package export defines the sink interface comparison results are handed
// to. Implementations live under infra/export.
package export

import (
	"time"

	"github.com/kilianp07/ocv/core/curve"
	"github.com/kilianp07/ocv/core/model"
)

// ComparisonResult is one comparison run, ready for storage or transport.
type ComparisonResult struct {
	RunID      string              `json:"run_id"`
	Time       time.Time           `json:"time"`
	Comparison curve.Comparison    `json:"comparison"`
	Delta      []model.CurveSample `json:"delta"`
	Summary    curve.Summary       `json:"summary"`
}

// CurveSink receives comparison results. Implementations must be safe for
// concurrent use.
type CurveSink interface {
	RecordComparison(res ComparisonResult) error
	Close() error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordComparison(ComparisonResult) error { return nil }
func (NopSink) Close() error                            { return nil }
