package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromMetrics counts curve operations served by the CLI and HTTP API.
type PromMetrics struct {
	comparisons *prometheus.CounterVec
	samplings   *prometheus.CounterVec
}

// NewPromMetrics registers the counters on the default Prometheus registerer.
// The metrics server is started separately with StartPromServer.
func NewPromMetrics() (*PromMetrics, error) {
	return NewPromMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromMetricsWithRegistry registers the counters on the provided
// registerer. A nil registerer defaults to the global Prometheus registerer.
func NewPromMetricsWithRegistry(reg prometheus.Registerer) (*PromMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	comparisons := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocv_comparisons_total",
		Help: "Total number of curve comparisons computed",
	}, []string{"label_a", "label_b"})
	samplings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ocv_samplings_total",
		Help: "Total number of single-curve samplings computed",
	}, []string{"label"})

	if err := reg.Register(comparisons); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			comparisons = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(samplings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			samplings = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromMetrics{comparisons: comparisons, samplings: samplings}, nil
}

// ObserveComparison increments the comparison counter for the label pair.
func (m *PromMetrics) ObserveComparison(labelA, labelB string) {
	m.comparisons.WithLabelValues(labelA, labelB).Inc()
}

// ObserveSampling increments the sampling counter for the label.
func (m *PromMetrics) ObserveSampling(label string) {
	m.samplings.WithLabelValues(label).Inc()
}
