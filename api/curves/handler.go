// Package curves exposes the curve comparison API over HTTP.
package curves

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kilianp07/ocv/core/curve"
	"github.com/kilianp07/ocv/core/model"
	"github.com/kilianp07/ocv/infra/logger"
	"github.com/kilianp07/ocv/infra/metrics"
)

const defaultSampleCount = 100

// Handler serves curve samples and comparisons for a loaded record table.
type Handler struct {
	records []model.BatteryStateRecord
	met     *metrics.PromMetrics
	log     logger.Logger
}

// New creates a Handler. met may be nil when metrics are disabled.
func New(records []model.BatteryStateRecord, met *metrics.PromMetrics, log logger.Logger) *Handler {
	return &Handler{records: records, met: met, log: log}
}

// Mux returns an http.Handler routing the curve endpoints.
func (h *Handler) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/curves/compare", h.handleCompare)
	mux.HandleFunc("/api/curves/sample", h.handleSample)
	return mux
}

// handleCompare serves GET /api/curves/compare?a=<label>&b=<label>&samples=N.
func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	labelA := r.URL.Query().Get("a")
	labelB := r.URL.Query().Get("b")
	n, err := sampleCount(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	recA, err := curve.FindRecordByLabel(h.records, labelA)
	if err != nil {
		h.writeError(w, err)
		return
	}
	recB, err := curve.FindRecordByLabel(h.records, labelB)
	if err != nil {
		h.writeError(w, err)
		return
	}
	cmp, err := curve.Compare(recA, recB, n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.met != nil {
		h.met.ObserveComparison(labelA, labelB)
	}
	resp := struct {
		Comparison curve.Comparison    `json:"comparison"`
		Delta      []model.CurveSample `json:"delta"`
		Summary    curve.Summary       `json:"summary"`
	}{cmp, curve.Delta(cmp), curve.Summarize(cmp)}
	h.writeJSON(w, resp)
}

// handleSample serves GET /api/curves/sample?label=<label>&samples=N.
func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	label := r.URL.Query().Get("label")
	n, err := sampleCount(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec, err := curve.FindRecordByLabel(h.records, label)
	if err != nil {
		h.writeError(w, err)
		return
	}
	samples, err := curve.SampleCurve(rec.Coefficients, n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if h.met != nil {
		h.met.ObserveSampling(label)
	}
	resp := struct {
		Record  model.BatteryStateRecord `json:"record"`
		Samples []model.CurveSample      `json:"samples"`
	}{rec, samples}
	h.writeJSON(w, resp)
}

func sampleCount(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("samples")
	if raw == "" {
		return defaultSampleCount, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("samples: %w", err)
	}
	return n, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var invalid curve.InvalidArgumentError
	switch {
	case errors.Is(err, curve.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &invalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}
