// Package metrics provides Prometheus metrics for the catalog engine and server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RangeParseFailures counts records whose ILR range could not be parsed
	RangeParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "adam",
			Name:      "range_parse_failures_total",
			Help:      "Total number of unparseable ILR ranges seen while filtering",
		},
	)

	// FilterPasses counts full filter recomputes
	FilterPasses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "adam",
			Name:      "filter_passes_total",
			Help:      "Total number of filter passes over an article set",
		},
	)

	// CatalogLoads counts catalog loads by status
	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adam",
			Name:      "catalog_loads_total",
			Help:      "Total number of catalog loads",
		},
		[]string{"source", "status"},
	)

	// CatalogLoadDuration measures catalog load latency
	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "adam",
			Name:      "catalog_load_duration_seconds",
			Help:      "Duration of catalog loads in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// CacheLookups counts Redis cache lookups by result
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adam",
			Name:      "cache_lookups_total",
			Help:      "Total number of catalog cache lookups",
		},
		[]string{"result"},
	)
)

// RecordLoad records a catalog load
func RecordLoad(source, status string, duration float64) {
	CatalogLoads.WithLabelValues(source, status).Inc()
	CatalogLoadDuration.WithLabelValues(source).Observe(duration)
}

// RecordCacheLookup records a cache hit, miss or error
func RecordCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
