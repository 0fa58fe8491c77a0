package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one server instance.
type Metrics struct {
	reg            *prometheus.Registry
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	computeLatency *prometheus.HistogramVec
	rateLimited    prometheus.Counter
}

// NewMetrics registers the reviewlens collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "reviewlens", Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "reviewlens", Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		computeLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "reviewlens", Name: "compute_duration_seconds",
				Help:    "Insight, attribute and report computation seconds.",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"kind"},
		),
		rateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "reviewlens", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter."},
		),
	}
	m.reg.MustRegister(m.httpRequests, m.httpLatency, m.computeLatency, m.rateLimited)
	return m
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) observeHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *Metrics) observeCompute(kind string, dur time.Duration) {
	m.computeLatency.WithLabelValues(kind).Observe(dur.Seconds())
}
