package export

import coreexport "github.com/kilianp07/ocv/core/export"

// MultiSink fans comparison results out to multiple sinks.
type MultiSink struct {
	Sinks []coreexport.CurveSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coreexport.CurveSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordComparison forwards the result to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordComparison(res coreexport.ComparisonResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordComparison(res); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
