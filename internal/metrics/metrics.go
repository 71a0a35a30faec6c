package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Tarmac
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Generation Metrics
	ScenariosGeneratedTotal prometheus.CounterVec
	FlightsGeneratedTotal   prometheus.Counter
	GenerationDuration      prometheus.HistogramVec

	// Queue Metrics
	QueueDepth         prometheus.GaugeVec
	QueueJobsTotal     prometheus.CounterVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tarmac_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tarmac_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Generation Metrics
		ScenariosGeneratedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_scenarios_generated_total",
				Help: "Total scenarios generated, by trigger (api, bulk, queue, worker)",
			},
			[]string{"trigger"},
		),
		FlightsGeneratedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tarmac_flights_generated_total",
				Help: "Total flight records emitted across all generated scenarios",
			},
		),
		GenerationDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tarmac_generation_duration_seconds",
				Help:    "Scenario generation time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"trigger"},
		),

		// Queue Metrics
		QueueDepth: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tarmac_queue_depth",
				Help: "Current length of the generation job stream",
			},
			[]string{"stream"},
		),
		QueueJobsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_queue_jobs_total",
				Help: "Total queue jobs by outcome",
			},
			[]string{"outcome"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tarmac_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tarmac_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
	}
}
