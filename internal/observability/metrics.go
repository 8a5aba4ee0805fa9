package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GraphQLOperationsTotal counts executed GraphQL operations by field and outcome.
	GraphQLOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_graphql_operations_total",
		Help: "Total number of GraphQL operations by top-level field and outcome",
	}, []string{"operation", "outcome"})

	// GraphQLOperationLatency records GraphQL execution latency per top-level field.
	GraphQLOperationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_graphql_operation_latency_seconds",
		Help:    "GraphQL operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	// GraphQLErrorsTotal counts GraphQL errors by category code.
	GraphQLErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_graphql_errors_total",
		Help: "Total number of GraphQL errors by category code",
	}, []string{"code"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LoaderBatchSize records how many keys each dataloader batch resolved.
	LoaderBatchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_loader_batch_size",
		Help:    "Number of keys per dataloader batch fetch",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	}, []string{"loader"})
)

// RecordGraphQLOperation records one executed top-level field.
func RecordGraphQLOperation(operation, outcome string, start time.Time) {
	GraphQLOperationsTotal.WithLabelValues(operation, outcome).Inc()
	GraphQLOperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records DB query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
