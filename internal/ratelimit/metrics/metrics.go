// Package metrics exposes Prometheus collectors for rate limiting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	decisions *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "core_ratelimit_decisions_total",
			Help: "Rate limit checks by scope and outcome.",
		}, []string{"scope", "outcome"}),
	}
}

func (m *Metrics) RecordDecision(scope, outcome string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(scope, outcome).Inc()
}
