package checkout

import "context"

//go:generate mockgen -source port.go -destination mock_port.go -package checkout

// Verifier authenticates a raw webhook delivery. Failures are *SignatureError.
type Verifier interface {
	VerifySignedEvent(payload []byte, header string) (Event, error)
}

// Fulfiller hands a paid pending order over to fulfillment.
type Fulfiller interface {
	FulfillOrder(ctx context.Context, req FulfillmentRequest) error
}

// FulfillerFunc adapts a function to Fulfiller.
type FulfillerFunc func(ctx context.Context, req FulfillmentRequest) error

func (f FulfillerFunc) FulfillOrder(ctx context.Context, req FulfillmentRequest) error {
	return f(ctx, req)
}
