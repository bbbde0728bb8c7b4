package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors shared by the upstream client and the feed.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	feedEvents       *prometheus.GaugeVec
	lastRefresh      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "olympic_feed",
			Name:      "upstream_requests_total",
			Help:      "Number of upstream page requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "olympic_feed",
			Name:      "upstream_request_duration_seconds",
			Help:      "Time spent on a single upstream page request",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		feedEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "olympic_feed",
			Name:      "events",
			Help:      "Events per bucket in the last aggregated feed",
		}, []string{"bucket"}),
		lastRefresh: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "olympic_feed",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix timestamp of the last successful aggregation",
		}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamDuration, m.feedEvents, m.lastRefresh)
	return m
}

func (m *Metrics) ObserveRequest(endpoint, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, status).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func (m *Metrics) SetFeed(live, upcoming, completed int, at time.Time) {
	if m == nil {
		return
	}
	m.feedEvents.WithLabelValues("live").Set(float64(live))
	m.feedEvents.WithLabelValues("upcoming").Set(float64(upcoming))
	m.feedEvents.WithLabelValues("completed").Set(float64(completed))
	m.lastRefresh.Set(float64(at.Unix()))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
