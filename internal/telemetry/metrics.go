package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mj1618/tilewm/internal/model"
)

const namespace = "tilewm"

// Metrics records dispatcher activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	notifications   *prometheus.CounterVec
	arrangements    *prometheus.CounterVec
	managedWindows  prometheus.Gauge
	arrangeDuration prometheus.Histogram
	queryFailures   *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Total number of notifications dispatched",
			},
			[]string{"kind"},
		),
		arrangements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "arrangements_total",
				Help:      "Total number of arrangements applied",
			},
			[]string{"layout"},
		),
		managedWindows: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "managed_windows",
				Help:      "Current number of tracked windows",
			},
		),
		arrangeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "arrange_duration_seconds",
				Help:      "Time spent computing and applying one arrangement",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
		),
		queryFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "environment_query_failures_total",
				Help:      "Environment queries that failed and were treated as unknown",
			},
			[]string{"query"},
		),
	}
	m.registry.MustRegister(
		m.notifications,
		m.arrangements,
		m.managedWindows,
		m.arrangeDuration,
		m.queryFailures,
	)
	return m
}

// Notification counts one dispatched notification.
func (m *Metrics) Notification(kind model.NotificationKind) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind.String()).Inc()
}

// Arranged records one arrangement and how long it took.
func (m *Metrics) Arranged(mode model.LayoutMode, d time.Duration) {
	if m == nil {
		return
	}
	m.arrangements.WithLabelValues(mode.String()).Inc()
	m.arrangeDuration.Observe(d.Seconds())
}

// Managed sets the tracked-window gauge.
func (m *Metrics) Managed(n int) {
	if m == nil {
		return
	}
	m.managedWindows.Set(float64(n))
}

// QueryFailed counts an environment query that failed.
func (m *Metrics) QueryFailed(query string) {
	if m == nil {
		return
	}
	m.queryFailures.WithLabelValues(query).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// NewServer returns an HTTP server exposing /metrics on addr.
func (m *Metrics) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
