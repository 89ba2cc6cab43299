package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks badge lifecycle and verification traffic. All methods are
// nil-safe so services can run without a collector in tests.
type Metrics struct {
	issuedTotal  prometheus.Counter
	revokedTotal prometheus.Counter
	checksTotal  *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		issuedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minar_badges_issued_total",
			Help: "Badges issued",
		}),
		revokedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minar_badges_revoked_total",
			Help: "Badges revoked",
		}),
		checksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minar_badge_checks_total",
			Help: "Badge validity checks, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncrementIssued() {
	if m == nil {
		return
	}
	m.issuedTotal.Inc()
}

func (m *Metrics) IncrementRevoked() {
	if m == nil {
		return
	}
	m.revokedTotal.Inc()
}

func (m *Metrics) IncrementCheck(outcome string) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(outcome).Inc()
}
