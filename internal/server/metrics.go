package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records layout runs and store mutations in Prometheus collectors.
// It implements [observability.StoreHooks] and [observability.LayoutHooks].
type Metrics struct {
	registry  *prometheus.Registry
	layouts   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	nodes     prometheus.Histogram
	mutations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		layouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nodegraph_layout_runs_total",
				Help: "Total number of layout runs by engine and outcome",
			},
			[]string{"engine", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nodegraph_layout_duration_seconds",
				Help:    "Duration of layout runs",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"engine"},
		),
		nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "nodegraph_layout_nodes",
				Help:    "Number of nodes passed to a layout run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 7),
			},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nodegraph_store_mutations_total",
				Help: "Total number of committed graph store mutations by operation",
			},
			[]string{"op"},
		),
	}
	m.registry.MustRegister(m.layouts, m.duration, m.nodes, m.mutations)
	return m
}

// Registry returns the Prometheus registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// OnMutation implements [observability.StoreHooks].
func (m *Metrics) OnMutation(kind string, _, _ int) {
	m.mutations.WithLabelValues(kind).Inc()
}

// OnLayoutStart implements [observability.LayoutHooks].
func (m *Metrics) OnLayoutStart(_ string, nodeCount int) {
	m.nodes.Observe(float64(nodeCount))
}

// OnLayoutComplete implements [observability.LayoutHooks].
func (m *Metrics) OnLayoutComplete(engine string, _ int, d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.layouts.WithLabelValues(engine, outcome).Inc()
	m.duration.WithLabelValues(engine).Observe(d.Seconds())
}
