package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingObserver captures notification names in order.
type recordingObserver struct {
	calls []string
}

func (o *recordingObserver) EventVerified(context.Context, Event) {
	o.calls = append(o.calls, "verified")
}

func (o *recordingObserver) VerificationFailed(context.Context, error) {
	o.calls = append(o.calls, "verification_failed")
}

func (o *recordingObserver) EventIgnored(context.Context, Event) {
	o.calls = append(o.calls, "ignored")
}

func (o *recordingObserver) SessionDecoded(context.Context, Event, Session) {
	o.calls = append(o.calls, "session_decoded")
}

func (o *recordingObserver) SessionRejected(context.Context, Event, error) {
	o.calls = append(o.calls, "session_rejected")
}

func (o *recordingObserver) FulfillmentFinished(_ context.Context, _ FulfillmentRequest, err error) {
	if err != nil {
		o.calls = append(o.calls, "fulfillment_failed")
		return
	}
	o.calls = append(o.calls, "fulfilled")
}

func webhookService(t *testing.T) (*WebhookService, *MockVerifier, *MockFulfiller, *recordingObserver) {
	t.Helper()

	ctrl := gomock.NewController(t)
	verifier := NewMockVerifier(ctrl)
	fulfiller := NewMockFulfiller(ctrl)
	observer := &recordingObserver{}

	return NewWebhookService(verifier, fulfiller, observer), verifier, fulfiller, observer
}

const completedSession = `{"id":"cs_1","metadata":{"PendingOrderId":"ord_42"},"payment_intent":"pi_9","customer":"cus_7"}`

func TestWebhookService_HandleWebhook(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	payload := []byte(`{"id":"evt_1"}`)
	signature := "t=1,v1=abc"

	t.Run("fulfills completed checkout session", func(t *testing.T) {
		// given
		service, verifier, fulfiller, observer := webhookService(t)
		verifier.EXPECT().VerifySignedEvent(payload, signature).
			Return(NewEvent("evt_1", EventTypeCheckoutSessionCompleted, json.RawMessage(completedSession)), nil)
		fulfiller.EXPECT().FulfillOrder(ctx, FulfillmentRequest{
			PendingOrderID:  "ord_42",
			PaymentIntentID: "pi_9",
			CustomerID:      "cus_7",
			EventID:         "evt_1",
			SessionID:       "cs_1",
		}).Return(nil).Times(1)

		// when
		err := service.HandleWebhook(ctx, payload, signature)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"verified", "session_decoded", "fulfilled"}, observer.calls)
	})

	t.Run("ignores other event types", func(t *testing.T) {
		for _, eventType := range []string{"payment_intent.succeeded", "checkout.session.expired", "charge.refunded"} {
			service, verifier, fulfiller, observer := webhookService(t)
			verifier.EXPECT().VerifySignedEvent(payload, signature).
				Return(NewEvent("evt_2", eventType, json.RawMessage(completedSession)), nil)
			fulfiller.EXPECT().FulfillOrder(gomock.Any(), gomock.Any()).Times(0)

			err := service.HandleWebhook(ctx, payload, signature)

			require.NoError(t, err, eventType)
			assert.Equal(t, []string{"verified", "ignored"}, observer.calls)
		}
	})

	t.Run("rejects unauthenticated delivery", func(t *testing.T) {
		service, verifier, fulfiller, observer := webhookService(t)
		sigErr := NewSignatureError(errors.New("webhook has no valid signature"))
		verifier.EXPECT().VerifySignedEvent(payload, signature).Return(Event{}, sigErr)
		fulfiller.EXPECT().FulfillOrder(gomock.Any(), gomock.Any()).Times(0)

		err := service.HandleWebhook(ctx, payload, signature)

		var target *SignatureError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "webhook has no valid signature", err.Error())
		assert.Equal(t, []string{"verification_failed"}, observer.calls)
	})

	t.Run("missing pending order id is not fulfilled", func(t *testing.T) {
		service, verifier, fulfiller, observer := webhookService(t)
		verifier.EXPECT().VerifySignedEvent(payload, signature).
			Return(NewEvent("evt_3", EventTypeCheckoutSessionCompleted,
				json.RawMessage(`{"id":"cs_1","metadata":{},"payment_intent":"pi_9","customer":"cus_7"}`)), nil)
		fulfiller.EXPECT().FulfillOrder(gomock.Any(), gomock.Any()).Times(0)

		err := service.HandleWebhook(ctx, payload, signature)

		assert.ErrorIs(t, err, ErrMissingPendingOrderID)
		assert.Equal(t, []string{"verified", "session_decoded", "session_rejected"}, observer.calls)
	})

	t.Run("malformed session is not fulfilled", func(t *testing.T) {
		service, verifier, fulfiller, observer := webhookService(t)
		verifier.EXPECT().VerifySignedEvent(payload, signature).
			Return(NewEvent("evt_4", EventTypeCheckoutSessionCompleted, json.RawMessage(`[]`)), nil)
		fulfiller.EXPECT().FulfillOrder(gomock.Any(), gomock.Any()).Times(0)

		err := service.HandleWebhook(ctx, payload, signature)

		assert.ErrorIs(t, err, ErrMalformedSession)
		assert.Contains(t, err.Error(), "event evt_4")
		assert.Equal(t, []string{"verified", "session_rejected"}, observer.calls)
	})

	t.Run("wraps fulfillment failure", func(t *testing.T) {
		service, verifier, fulfiller, observer := webhookService(t)
		downstream := errors.New("order service unavailable")
		verifier.EXPECT().VerifySignedEvent(payload, signature).
			Return(NewEvent("evt_5", EventTypeCheckoutSessionCompleted, json.RawMessage(completedSession)), nil)
		fulfiller.EXPECT().FulfillOrder(ctx, gomock.Any()).Return(downstream).Times(1)

		err := service.HandleWebhook(ctx, payload, signature)

		assert.ErrorIs(t, err, ErrFulfillmentFailed)
		assert.ErrorIs(t, err, downstream)
		assert.Equal(t, []string{"verified", "session_decoded", "fulfillment_failed"}, observer.calls)
	})
}

func TestNewWebhookService_NilObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := NewMockVerifier(ctrl)
	verifier.EXPECT().VerifySignedEvent(gomock.Any(), gomock.Any()).
		Return(NewEvent("evt_1", "customer.created", nil), nil)

	service := NewWebhookService(verifier, NewMockFulfiller(ctrl), nil)

	assert.NoError(t, service.HandleWebhook(context.Background(), []byte("{}"), "sig"))
}
