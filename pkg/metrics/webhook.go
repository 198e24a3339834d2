package metrics

import "github.com/prometheus/client_golang/prometheus"

// Webhook outcomes.
const (
	OutcomeRejected  = "rejected"
	OutcomeIgnored   = "ignored"
	OutcomeMalformed = "malformed"
	OutcomeFulfilled = "fulfilled"
	OutcomeFailed    = "failed"
)

var (
	// WebhookEventsTotal is labelled by event kind, not raw type, to keep cardinality bounded.
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Total number of provider webhook deliveries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	FulfillmentDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "fulfillment",
			Name:      "request_duration_seconds",
			Help:      "Order fulfillment call duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"mode", "status"},
	)
)

func init() {
	Registry.MustRegister(WebhookEventsTotal, FulfillmentDuration)
}
