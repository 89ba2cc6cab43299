package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks confidence level movement. All methods are nil-safe so
// services can run without a collector in tests.
type Metrics struct {
	escalationsTotal *prometheus.CounterVec
	decaysTotal      *prometheus.CounterVec
	sweepDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		escalationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minar_confidence_escalations_total",
			Help: "Confidence level escalations, by trigger",
		}, []string{"trigger"}),
		decaysTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minar_confidence_decays_total",
			Help: "Confidence level decays, by reason",
		}, []string{"reason"}),
		sweepDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "minar_confidence_sweep_duration_seconds",
			Help:    "Duration of decay sweeps",
			Buckets: prometheus.DefBuckets,
		}, []string{"sweep"}),
	}
}

func (m *Metrics) IncrementEscalation(trigger string) {
	if m == nil {
		return
	}
	m.escalationsTotal.WithLabelValues(trigger).Inc()
}

func (m *Metrics) IncrementDecay(reason string) {
	if m == nil {
		return
	}
	m.decaysTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveSweepDuration(sweep string, seconds float64) {
	if m == nil {
		return
	}
	m.sweepDuration.WithLabelValues(sweep).Observe(seconds)
}
