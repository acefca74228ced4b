// Package metrics collects and exposes Prometheus metrics for the
// identity service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and updates the service's counters on its own
// registry.
type Collector struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	fallback      *prometheus.CounterVec
	registry      *prometheus.Registry
}

// NewCollector creates a Collector with a private registry.
func NewCollector() *Collector {
	c := &Collector{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talenthub_registrations_total",
			Help: "Registration attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talenthub_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		fallback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "talenthub_directory_fallback_total",
			Help: "Directory operations served by the in-process fallback tier.",
		}, []string{"op"}),
		registry: prometheus.NewRegistry(),
	}
	c.registry.MustRegister(c.registrations, c.logins, c.fallback)
	return c
}

// RecordRegistration counts one registration attempt by outcome.
func (c *Collector) RecordRegistration(outcome string) {
	c.registrations.WithLabelValues(outcome).Inc()
}

// RecordLogin counts one login attempt by outcome.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// RecordFallback counts one directory operation served by the fallback
// tier. It matches the users.TrackFallback signature.
func (c *Collector) RecordFallback(op string) {
	c.fallback.WithLabelValues(op).Inc()
}

// Handler serves the scrape endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
