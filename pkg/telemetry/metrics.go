// Package telemetry exposes prometheus metrics for catalog operations.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the catalog operation metrics and their registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates a metrics set with its own prometheus registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datacat",
		Name:      "catalog_operations_total",
		Help:      "Catalog operations by operation, dataset and outcome.",
	}, []string{"operation", "dataset", "outcome"})
	reg.MustRegister(operations)

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "datacat",
		Name:      "catalog_operation_duration_seconds",
		Help:      "Catalog operation latency by operation and dataset.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "dataset"})
	reg.MustRegister(duration)

	return &Metrics{
		registry:   reg,
		operations: operations,
		duration:   duration,
	}
}

// ObserveOperation records one catalog operation.
func (m *Metrics) ObserveOperation(operation, ds string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.operations.WithLabelValues(operation, ds, outcome).Inc()
	m.duration.WithLabelValues(operation, ds).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
