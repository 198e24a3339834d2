package fulfillment

import (
	"context"
	"time"

	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/pkg/metrics"
)

// WithMetrics records the duration and outcome of every fulfillment call.
func WithMetrics(mode string, next checkout.Fulfiller) checkout.Fulfiller {
	return checkout.FulfillerFunc(func(ctx context.Context, req checkout.FulfillmentRequest) error {
		start := time.Now()

		err := next.FulfillOrder(ctx, req)

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.FulfillmentDuration.WithLabelValues(mode, status).Observe(time.Since(start).Seconds())

		return err
	})
}
