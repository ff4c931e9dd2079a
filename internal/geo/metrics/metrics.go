package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Resolutions *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Resolutions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "core_geo_resolutions_total",
			Help: "Total geo resolutions by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

func (m *Metrics) RecordResolution(operation, outcome string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(operation, outcome).Inc()
}
