// Package metrics exposes Prometheus collectors for the audit log.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	mutations *prometheus.CounterVec
	dropped   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "core_audit_mutations_total",
			Help: "Audit log mutations by action and outcome.",
		}, []string{"action", "outcome"}),
		dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "core_audit_events_dropped_total",
			Help: "Audit events dropped because the publish inbox was full.",
		}),
	}
}

func (m *Metrics) RecordMutation(action, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) RecordDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}
