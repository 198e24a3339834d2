package checkout

import (
	"context"
	"fmt"
)

// WebhookService authenticates provider deliveries and triggers fulfillment
// for completed checkout sessions. It holds no mutable state.
type WebhookService struct {
	verifier  Verifier
	fulfiller Fulfiller
	observer  Observer
}

func NewWebhookService(verifier Verifier, fulfiller Fulfiller, observer Observer) *WebhookService {
	if observer == nil {
		observer = NopObserver{}
	}
	return &WebhookService{
		verifier:  verifier,
		fulfiller: fulfiller,
		observer:  observer,
	}
}

// HandleWebhook processes one delivery. payload must be the request body exactly as received.
//
// Errors:
//   - *SignatureError when the delivery is not authentic; nothing else happens.
//   - ErrMalformedSession / ErrMissingPendingOrderID when a completed session cannot be
//     turned into a fulfillment request; fulfillment is not called.
//   - ErrFulfillmentFailed wrapping the collaborator's error.
//
// Events of any other kind are accepted and ignored.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.VerifySignedEvent(payload, signature)
	if err != nil {
		s.observer.VerificationFailed(ctx, err)
		return err
	}

	s.observer.EventVerified(ctx, event)

	switch event.Kind {
	case KindCheckoutSessionCompleted:
		return s.completeCheckout(ctx, event)
	default:
		s.observer.EventIgnored(ctx, event)
		return nil
	}
}

func (s *WebhookService) completeCheckout(ctx context.Context, event Event) error {
	session, err := DecodeSession(event.Object)
	if err != nil {
		s.observer.SessionRejected(ctx, event, err)
		return fmt.Errorf("event %s: %w", event.ID, err)
	}

	s.observer.SessionDecoded(ctx, event, session)

	req, err := session.FulfillmentRequest(event.ID)
	if err != nil {
		s.observer.SessionRejected(ctx, event, err)
		return err
	}

	err = s.fulfiller.FulfillOrder(ctx, req)
	s.observer.FulfillmentFinished(ctx, req, err)
	if err != nil {
		return fmt.Errorf("%w: pending order %s: %w", ErrFulfillmentFailed, req.PendingOrderID, err)
	}

	return nil
}
