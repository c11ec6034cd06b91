package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fitcoach"

// Metrics holds the Prometheus collectors for both handlers
type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	replyTier        *prometheus.CounterVec
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled requests by handler and status code.",
		}, []string{"handler", "code"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of completion API calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"outcome"}),
		replyTier: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_extraction_total",
			Help:      "Reply extractions by the fallback tier that matched.",
		}, []string{"tier"}),
	}

	registry.MustRegister(m.requests, m.upstreamDuration, m.replyTier)
	return m
}

// ObserveRequest counts a completed request
func (m *Metrics) ObserveRequest(handler string, statusCode int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(handler, strconv.Itoa(statusCode)).Inc()
}

// ObserveUpstream records the latency of one completion API call
func (m *Metrics) ObserveUpstream(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveReplyTier counts which extraction tier produced a reply
func (m *Metrics) ObserveReplyTier(tier string) {
	if m == nil {
		return
	}
	m.replyTier.WithLabelValues(tier).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
