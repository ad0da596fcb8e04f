// Package metrics exposes Prometheus counters and histograms for the API.
//
// A Collector owns a private registry rather than using the global default,
// so several collectors can coexist (one per test server, for instance)
// without duplicate-registration panics.
//
// Every method is safe to call on a nil *Collector and does nothing. Code
// that records metrics never has to check whether metrics are enabled.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds all Prometheus metrics for the application.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ideasCreated        prometheus.Counter
	recordsCreated      *prometheus.CounterVec
	ticketStatusChanges *prometheus.CounterVec
}

// New creates a collector whose metric names are prefixed with namespace.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ideasCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ideas_created_total",
				Help:      "Total number of ideas created",
			},
		),
		recordsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_created_total",
				Help:      "Total number of child records created, by kind",
			},
			[]string{"kind"},
		),
		ticketStatusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticket_status_changes_total",
				Help:      "Total number of kanban ticket status updates, by new status",
			},
			[]string{"status"},
		),
	}

	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.ideasCreated,
		c.recordsCreated,
		c.ticketStatusChanges,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request. route is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (c *Collector) IdeaCreated() {
	if c == nil {
		return
	}
	c.ideasCreated.Inc()
}

// RecordsCreated adds n to the counter for kind ("scores", "features", ...).
func (c *Collector) RecordsCreated(kind string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.recordsCreated.WithLabelValues(kind).Add(float64(n))
}

func (c *Collector) TicketStatusChanged(status string) {
	if c == nil {
		return
	}
	c.ticketStatusChanges.WithLabelValues(status).Inc()
}
