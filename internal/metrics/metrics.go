// Package metrics exposes run counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/dailyreel/internal/domain"
)

const namespace = "dailyreel"

// Metrics holds the run collectors on a private registry.
type Metrics struct {
	registry       *prometheus.Registry
	runs           *prometheus.CounterVec
	metadataSource *prometheus.CounterVec
	duration       prometheus.Histogram
}

// New creates the collectors and registers them with Go runtime metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Upload runs by outcome.",
		}, []string{"status"}),
		metadataSource: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_source_total",
			Help:      "Uploaded videos by metadata source.",
		}, []string{"source"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of upload runs.",
			Buckets:   []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
		}),
	}

	m.registry.MustRegister(
		m.runs,
		m.metadataSource,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRun counts a finished run.
func (m *Metrics) ObserveRun(result domain.RunResult, duration time.Duration) {
	m.runs.WithLabelValues(string(result.Status())).Inc()
	m.duration.Observe(duration.Seconds())

	if uploaded, ok := result.(*domain.Uploaded); ok {
		m.metadataSource.WithLabelValues(string(uploaded.MetadataSource)).Inc()
	}
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
