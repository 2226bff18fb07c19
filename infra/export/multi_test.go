package export

import (
	"fmt"
	"testing"

	coreexport "github.com/kilianp07/ocv/core/export"
)

type stubSink struct {
	records int
	closed  bool
	err     error
}

func (s *stubSink) RecordComparison(coreexport.ComparisonResult) error {
	s.records++
	return s.err
}

func (s *stubSink) Close() error {
	s.closed = true
	return nil
}

func TestMultiSinkFanOut(t *testing.T) {
	a := &stubSink{}
	b := &stubSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordComparison(coreexport.ComparisonResult{}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if a.records != 1 || b.records != 1 {
		t.Fatalf("records: %d, %d", a.records, b.records)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("sinks not closed")
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	a := &stubSink{err: fmt.Errorf("boom")}
	b := &stubSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordComparison(coreexport.ComparisonResult{}); err == nil {
		t.Fatalf("expected error")
	}
	if b.records != 0 {
		t.Fatalf("expected short-circuit, got %d records on second sink", b.records)
	}
}
