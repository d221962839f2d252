package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	GenerationTotal    *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	RelayTotal         *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		GenerationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetscribe",
			Name:      "generation_total",
			Help:      "Generate and refine requests by mode and outcome.",
		}, []string{"kind", "mode", "outcome", "source"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vetscribe",
			Name:      "generation_duration_seconds",
			Help:      "Wall time spent producing a document, fallback included.",
			Buckets:   []float64{0.05, 0.25, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"kind", "source"}),
		RelayTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetscribe",
			Name:      "relay_operations_total",
			Help:      "Relay send/receive operations by result.",
		}, []string{"op", "result"}),
	}

	reg.MustRegister(
		m.GenerationTotal,
		m.GenerationDuration,
		m.RelayTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
