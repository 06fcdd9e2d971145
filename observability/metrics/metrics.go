// Package metrics exposes Prometheus metrics for the HTTP server and the object store.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bucketfs"

// Metrics holds all collectors of one process, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Object store metrics
	StoreCalls    *prometheus.CounterVec
	StoreDuration *prometheus.HistogramVec
	StoreErrors   *prometheus.CounterVec
	UploadedBytes prometheus.Counter
}

// New creates the collectors and registers them together with the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"method", "route"},
		),

		StoreCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_calls_total",
				Help:      "Total number of object store calls",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_call_duration_seconds",
				Help:      "Object store call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		StoreErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_errors_total",
				Help:      "Total number of failed object store calls by error code",
			},
			[]string{"operation", "code"},
		),
		UploadedBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_uploaded_bytes_total",
				Help:      "Total number of bytes streamed into the object store",
			},
		),
	}
}

// Registry returns the registry holding every collector of m.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
