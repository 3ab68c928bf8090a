package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the ticket pipeline
type Metrics struct {
	TicketsProcessed  prometheus.Counter
	FlightsExtracted  prometheus.Counter
	PassengersMatched *prometheus.CounterVec
	PassengersCreated prometheus.Counter
	ProcessingTime    prometheus.Histogram
	ErrorsCount       *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TicketsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_processed_total",
			Help:      "The total number of processed tickets",
		}),
		FlightsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_extracted_total",
			Help:      "The total number of flights extracted from tickets",
		}),
		PassengersMatched: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passengers_matched_total",
			Help:      "The total number of passenger names resolved, by match type",
		}, []string{"match_type"}),
		PassengersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passengers_created_total",
			Help:      "The total number of new passenger identities created",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ticket_processing_time_seconds",
			Help:      "Time taken to process tickets",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
