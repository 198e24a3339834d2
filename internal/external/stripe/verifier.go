// Package stripe authenticates Stripe webhook deliveries.
package stripe

import (
	"encoding/json"
	"time"

	"CakeshopWebhooks/internal/domain/checkout"

	"github.com/stripe/stripe-go/v82/webhook"
)

// HeaderSignature carries the signed timestamp and signatures of a delivery.
const HeaderSignature = "Stripe-Signature"

// Verifier checks deliveries against the endpoint's signing secret.
// It is safe for concurrent use.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

// NewVerifier returns a Verifier. A zero tolerance means the SDK default.
func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{
		secret:    secret,
		tolerance: tolerance,
	}
}

// VerifySignedEvent validates the signature over the exact payload bytes and parses the event.
// The event's API version is not compared with the SDK's.
func (v *Verifier) VerifySignedEvent(payload []byte, header string) (checkout.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, header, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return checkout.Event{}, checkout.NewSignatureError(err)
	}

	var object json.RawMessage
	if event.Data != nil {
		object = event.Data.Raw
	}

	return checkout.NewEvent(event.ID, string(event.Type), object), nil
}
