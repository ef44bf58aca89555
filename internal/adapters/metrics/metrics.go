// Package metrics exposes Prometheus collectors for the API and the streak
// worker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kanso"

type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	toggles    *prometheus.CounterVec
	milestones *prometheus.CounterVec
}

// New registers every collector on a private registry so tests can build as
// many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "completion_toggles_total",
			Help:      "Completion toggles by resulting state.",
		}, []string{"state"}),
		milestones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "streak_milestones_total",
			Help:      "Streak milestones reached, by milestone length.",
		}, []string{"milestone"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.toggles, m.milestones,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records one sample per request. Unmatched routes share a single
// label value to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) CompletionToggled(completed bool) {
	state := "removed"
	if completed {
		state = "completed"
	}
	m.toggles.WithLabelValues(state).Inc()
}

func (m *Metrics) MilestoneReached(milestone int) {
	m.milestones.WithLabelValues(strconv.Itoa(milestone)).Inc()
}
