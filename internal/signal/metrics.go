package signal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks signal volume. Methods are nil-safe so tests can pass a nil
// collector.
type Metrics struct {
	signalsTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		signalsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minar_signals_total",
			Help: "Signals recorded, by type and source",
		}, []string{"type", "source"}),
	}
}

func (m *Metrics) IncrementSignal(sigType Type, source Source) {
	if m == nil {
		return
	}
	m.signalsTotal.WithLabelValues(string(sigType), string(source)).Inc()
}
