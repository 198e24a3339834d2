package checkout

import (
	"context"
	"log/slog"

	"CakeshopWebhooks/pkg/metrics"
)

// Observer receives diagnostic notifications from WebhookService.
// It has no say in control flow.
type Observer interface {
	EventVerified(ctx context.Context, event Event)
	VerificationFailed(ctx context.Context, err error)
	EventIgnored(ctx context.Context, event Event)
	SessionDecoded(ctx context.Context, event Event, session Session)
	SessionRejected(ctx context.Context, event Event, err error)
	FulfillmentFinished(ctx context.Context, req FulfillmentRequest, err error)
}

// kindUnknown labels deliveries rejected before their type could be trusted.
const kindUnknown = "unknown"

// LogObserver writes notifications to slog and Prometheus.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{logger: l}
}

func (o *LogObserver) EventVerified(ctx context.Context, event Event) {
	o.logger.InfoContext(ctx, "Webhook event verified",
		"event_id", event.ID,
		"event_type", event.Type)
}

func (o *LogObserver) VerificationFailed(ctx context.Context, err error) {
	o.logger.WarnContext(ctx, "Webhook signature verification failed", slog.Any("error", err))
	metrics.WebhookEventsTotal.WithLabelValues(kindUnknown, metrics.OutcomeRejected).Inc()
}

func (o *LogObserver) EventIgnored(ctx context.Context, event Event) {
	o.logger.DebugContext(ctx, "Webhook event ignored",
		"event_id", event.ID,
		"event_type", event.Type)
	metrics.WebhookEventsTotal.WithLabelValues(event.Kind.String(), metrics.OutcomeIgnored).Inc()
}

func (o *LogObserver) SessionDecoded(ctx context.Context, event Event, session Session) {
	o.logger.InfoContext(ctx, "Checkout session completed",
		"event_id", event.ID,
		"session_id", session.ID,
		slog.Any("metadata", session.Metadata))
}

func (o *LogObserver) SessionRejected(ctx context.Context, event Event, err error) {
	o.logger.ErrorContext(ctx, "Checkout session rejected",
		"event_id", event.ID,
		slog.Any("error", err))
	metrics.WebhookEventsTotal.WithLabelValues(event.Kind.String(), metrics.OutcomeMalformed).Inc()
}

func (o *LogObserver) FulfillmentFinished(ctx context.Context, req FulfillmentRequest, err error) {
	if err != nil {
		o.logger.ErrorContext(ctx, "Order fulfillment failed",
			"event_id", req.EventID,
			"pending_order_id", req.PendingOrderID,
			slog.Any("error", err))
		metrics.WebhookEventsTotal.WithLabelValues(KindCheckoutSessionCompleted.String(), metrics.OutcomeFailed).Inc()
		return
	}

	o.logger.InfoContext(ctx, "Order fulfillment requested",
		"event_id", req.EventID,
		"pending_order_id", req.PendingOrderID,
		"payment_intent_id", req.PaymentIntentID,
		"customer_id", req.CustomerID)
	metrics.WebhookEventsTotal.WithLabelValues(KindCheckoutSessionCompleted.String(), metrics.OutcomeFulfilled).Inc()
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) EventVerified(context.Context, Event) {}
func (NopObserver) VerificationFailed(context.Context, error) {}
func (NopObserver) EventIgnored(context.Context, Event) {}
func (NopObserver) SessionDecoded(context.Context, Event, Session) {}
func (NopObserver) SessionRejected(context.Context, Event, error) {}
func (NopObserver) FulfillmentFinished(context.Context, FulfillmentRequest, error) {}
