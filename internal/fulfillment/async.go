package fulfillment

import (
	"context"
	"fmt"

	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/internal/messaging"
)

// MessageTypeFulfillmentRequested is the envelope type consumed by the order service.
const MessageTypeFulfillmentRequested = "order.fulfillment_requested"

// FulfillmentRequested is the payload of a MessageTypeFulfillmentRequested envelope.
type FulfillmentRequested struct {
	PendingOrderID    string `json:"pending_order_id"`
	PaymentIntentID   string `json:"payment_intent_id"`
	CustomerID        string `json:"customer_id"`
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
}

// AsyncFulfiller hands fulfillment over to a message broker.
// The call completes once the broker has accepted the message.
type AsyncFulfiller struct {
	publisher messaging.Publisher
}

func NewAsyncFulfiller(publisher messaging.Publisher) *AsyncFulfiller {
	return &AsyncFulfiller{publisher: publisher}
}

// FulfillOrder keys the message by pending order id so all messages for one order stay ordered.
func (f *AsyncFulfiller) FulfillOrder(ctx context.Context, req checkout.FulfillmentRequest) error {
	envelope, err := messaging.NewEnvelope(req.EventID, req.PendingOrderID, MessageTypeFulfillmentRequested, FulfillmentRequested{
		PendingOrderID:    req.PendingOrderID,
		PaymentIntentID:   req.PaymentIntentID,
		CustomerID:        req.CustomerID,
		CheckoutSessionID: req.SessionID,
	})
	if err != nil {
		return fmt.Errorf("create envelope: %w", err)
	}
	return f.publisher.Publish(ctx, envelope)
}
