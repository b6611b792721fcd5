package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds the Prometheus metrics of one dispatch process
type MetricsRegistry struct {
	registry *prometheus.Registry

	// Scheduling Metrics
	FlightsCreatedTotal prometheus.Counter
	FlightsUpdatedTotal prometheus.Counter
	FlightsDeletedTotal prometheus.Counter
	ConflictsTotal      *prometheus.CounterVec
	RejectionsTotal     *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Report Metrics
	ExportsTotal prometheus.Counter
}

// NewMetricsRegistry initializes a MetricsRegistry on its own prometheus.Registry
func NewMetricsRegistry() *MetricsRegistry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &MetricsRegistry{
		registry: reg,

		FlightsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_flights_created_total",
				Help: "Flights persisted together with their pilot assignment",
			},
		),
		FlightsUpdatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_flights_updated_total",
				Help: "Flights revised successfully",
			},
		),
		FlightsDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_flights_deleted_total",
				Help: "Flights deleted with their assignment",
			},
		),
		ConflictsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_scheduling_conflicts_total",
				Help: "Requests refused because a resource was already committed on the date",
			},
			[]string{"resource"},
		),
		RejectionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_operation_rejections_total",
				Help: "Failed operations by operation and error kind",
			},
			[]string{"operation", "kind"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dispatch_operation_duration_seconds",
				Help:    "Service operation latency in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"operation"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_cache_hits_total",
				Help: "Lookup cache hits by cache name",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dispatch_cache_misses_total",
				Help: "Lookup cache misses by cache name",
			},
			[]string{"cache"},
		),

		ExportsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dispatch_exports_total",
				Help: "Workbooks written by the export command",
			},
		),
	}
}

// Gatherer exposes the registry for tests and dumps
func (m *MetricsRegistry) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile dumps every metric in the node-exporter textfile format
func (m *MetricsRegistry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
