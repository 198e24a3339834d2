package fulfillment

import (
	"context"

	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/internal/external/orderservice"
)

// OrderClient is the part of the order service API used for fulfillment.
type OrderClient interface {
	FulfillOrder(ctx context.Context, pendingOrderID string, req orderservice.FulfillOrderRequest, idempotencyKey string) error
}

// HTTPFulfiller fulfills orders synchronously by calling the order service.
type HTTPFulfiller struct {
	client OrderClient
}

func NewHTTPFulfiller(client OrderClient) *HTTPFulfiller {
	return &HTTPFulfiller{client: client}
}

// FulfillOrder uses the provider event id as the idempotency key.
func (f *HTTPFulfiller) FulfillOrder(ctx context.Context, req checkout.FulfillmentRequest) error {
	return f.client.FulfillOrder(ctx, req.PendingOrderID, orderservice.FulfillOrderRequest{
		PaymentIntentID:   req.PaymentIntentID,
		CustomerID:        req.CustomerID,
		CheckoutSessionID: req.SessionID,
	}, req.EventID)
}
