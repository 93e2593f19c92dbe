package actions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics counts what the queue did. A nil *Metrics records nothing.
type Metrics struct {
	Processed *prometheus.CounterVec
	Waterings *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Processed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mygarden",
			Subsystem: "actions",
			Name:      "processed_total",
			Help:      "Actions executed by the watering action queue.",
		}, []string{"kind"}),
		Waterings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mygarden",
			Subsystem: "actions",
			Name:      "waterings_total",
			Help:      "Watering attempts by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) processed(k Kind) {
	if m == nil {
		return
	}
	m.Processed.WithLabelValues(k.String()).Inc()
}

func (m *Metrics) watered(outcome string) {
	if m == nil {
		return
	}
	m.Waterings.WithLabelValues(outcome).Inc()
}
