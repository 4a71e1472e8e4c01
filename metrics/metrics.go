package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processed_total",
			Help:      "The total number of processed messages",
		},
		[]string{"topic", "handler"},
	)

	MessagesProcessingFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "messages",
			Name:      "processing_failed_total",
			Help:      "The total number of message processing failures",
		},
		[]string{"topic", "handler"},
	)

	// MessagesProcessingDuration is a summary with quantiles 0.5, 0.9 and 0.99.
	MessagesProcessingDuration = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace:  "messages",
			Name:       "processing_duration_seconds",
			Help:       "The total time spent processing messages",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"topic", "handler"},
	)

	PurchasesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "purchases_accepted_total",
			Help: "The total number of ticket purchases passed to payment and seat reservation",
		},
	)

	// PurchasesRejected is labelled with the rejection reason returned to the client.
	PurchasesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "purchases_rejected_total",
			Help: "The total number of rejected ticket purchases",
		},
		[]string{"reason"},
	)
)
