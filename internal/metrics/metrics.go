// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface and authentication outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  prometheus.Histogram
	registrations prometheus.Counter
	logins        prometheus.Counter
	loginFailures prometheus.Counter
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gatekeep_http_requests_total",
			Help: "Total HTTP requests handled, by method",
		}, []string{"method"}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gatekeep_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatekeep_registrations_total",
			Help: "Total successful self-registrations",
		}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatekeep_logins_total",
			Help: "Total successful logins",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gatekeep_login_failures_total",
			Help: "Total rejected login attempts",
		}),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.registrations,
		c.logins,
		c.loginFailures,
	)

	return c
}

func (c *Collector) RecordRequest(method string, duration time.Duration) {
	c.httpRequests.WithLabelValues(method).Inc()
	c.httpDuration.Observe(duration.Seconds())
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordLogin(success bool) {
	if success {
		c.logins.Inc()
		return
	}
	c.loginFailures.Inc()
}

// Handler serves the collector's registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
