package widget

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	modeSingle = "single"
	modeGrid   = "grid"
)

// Metrics counts refreshes and surface pushes. A nil *Metrics records nothing.
type Metrics struct {
	Refreshes prometheus.Counter
	Pushes    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Refreshes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "mygarden",
			Subsystem: "widget",
			Name:      "refreshes_total",
			Help:      "Refresh cycles over all display surfaces.",
		}),
		Pushes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mygarden",
			Subsystem: "widget",
			Name:      "pushes_total",
			Help:      "Views pushed to display surfaces.",
		}, []string{"mode", "outcome"}),
	}
}

func (m *Metrics) refreshed() {
	if m == nil {
		return
	}
	m.Refreshes.Inc()
}

func (m *Metrics) pushed(mode string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "failed"
	}
	m.Pushes.WithLabelValues(mode, outcome).Inc()
}
