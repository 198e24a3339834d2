package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
)

// MetadataPendingOrderID is the session metadata key set by checkout creation.
const MetadataPendingOrderID = "PendingOrderId"

type Session struct {
	ID              string
	Metadata        map[string]string
	PaymentIntentID string
	CustomerID      string
}

// FulfillmentRequest is what the fulfillment collaborator receives.
// EventID and SessionID are informational; they do not take part in dispatch.
type FulfillmentRequest struct {
	PendingOrderID  string
	PaymentIntentID string
	CustomerID      string

	EventID   string
	SessionID string
}

// DecodeSession decodes data.object of a checkout.session.completed event.
// payment_intent and customer may arrive as ids or expanded objects.
func DecodeSession(raw json.RawMessage) (Session, error) {
	// A bare string would decode as an unexpanded session id.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Session{}, fmt.Errorf("%w: data.object is not a JSON object", ErrMalformedSession)
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(trimmed, &cs); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	if cs.Object != "" && cs.Object != "checkout.session" {
		return Session{}, fmt.Errorf("%w: unexpected object %q", ErrMalformedSession, cs.Object)
	}

	session := Session{
		ID:       cs.ID,
		Metadata: cs.Metadata,
	}
	if cs.PaymentIntent != nil {
		session.PaymentIntentID = cs.PaymentIntent.ID
	}
	if cs.Customer != nil {
		session.CustomerID = cs.Customer.ID
	}
	return session, nil
}

// FulfillmentRequest builds the fulfillment call arguments. The values are taken
// verbatim; a missing or empty pending order id is rejected.
func (s Session) FulfillmentRequest(eventID string) (FulfillmentRequest, error) {
	pendingOrderID, ok := s.Metadata[MetadataPendingOrderID]
	if !ok || pendingOrderID == "" {
		return FulfillmentRequest{}, fmt.Errorf("checkout session %s: %w", s.ID, ErrMissingPendingOrderID)
	}

	return FulfillmentRequest{
		PendingOrderID:  pendingOrderID,
		PaymentIntentID: s.PaymentIntentID,
		CustomerID:      s.CustomerID,
		EventID:         eventID,
		SessionID:       s.ID,
	}, nil
}
