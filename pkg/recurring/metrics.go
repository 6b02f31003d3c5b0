package recurring

import "github.com/prometheus/client_golang/prometheus"

var (
	materializedCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledgerbook_recurring_expenses_materialized_total",
			Help: "Number of expenses created for recurring expenses.",
		},
	)

	materializeFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledgerbook_recurring_expenses_materialize_failures_total",
			Help: "Number of expenses for recurring expenses that could not be created.",
		},
	)

	syncDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ledgerbook_recurring_sync_duration_seconds",
			Help:    "Duration of syncing the expenses of a month.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Collectors returns the metrics of the package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{materializedCount, materializeFailures, syncDuration}
}
