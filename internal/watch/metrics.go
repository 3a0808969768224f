package watch

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts the work done by a Watcher. Each Metrics owns its registry
// so several watchers (and tests) do not collide on the default one.
type Metrics struct {
	registry  *prometheus.Registry
	formatted prometheus.Counter
	errors    prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetrics creates and registers the watcher metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		formatted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtlefmt_files_formatted_total",
			Help: "Files formatted successfully.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turtlefmt_format_errors_total",
			Help: "Files that could not be formatted.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turtlefmt_format_duration_seconds",
			Help:    "Time spent formatting one file.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
	m.registry.MustRegister(m.formatted, m.errors, m.duration)
	return m
}

// Registry exposes the registry the metrics live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observe(start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.errors.Inc()
		return
	}
	m.formatted.Inc()
}
