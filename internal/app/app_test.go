package app

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"CakeshopWebhooks/config"
	"CakeshopWebhooks/internal/controller/rest"
	"CakeshopWebhooks/internal/external/orderservice"
	"CakeshopWebhooks/internal/external/stripe"
	"CakeshopWebhooks/pkg/correlation"
	"CakeshopWebhooks/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testSecret = "whsec_app_test"

func testConfig(orderServiceURL string) config.Config {
	return config.Config{
		StripeWebhookSecret:    testSecret,
		StripeWebhookTolerance: 5 * time.Minute,
		WebhookPath:            "/api/webhooks",
		WebhookMaxBodyBytes:    65536,
		FulfillmentMode:        config.FulfillmentModeHTTP,
		OrderServiceBaseURL:    orderServiceURL,
		OrderServiceTimeout:    5 * time.Second,
	}
}

// fakeOrderService records fulfillment calls and answers health probes.
func fakeOrderService(t *testing.T, calls *atomic.Int32, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health/live" {
			w.WriteHeader(http.StatusOK)
			return
		}

		calls.Add(1)
		assert.Equal(t, "/internal/orders/ord_42/fulfill", r.URL.Path)
		assert.Equal(t, "evt_1", r.Header.Get("Idempotency-Key"))

		var req orderservice.FulfillOrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pi_9", req.PaymentIntentID)
		assert.Equal(t, "cus_7", req.CustomerID)

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestEngine(t *testing.T, cfg config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := newFulfillmentBackend(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.close() })

	return newWebhookEngine(cfg, backend, logger.New(logger.Options{Output: io.Discard}))
}

func deliver(engine *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(stripe.HeaderSignature, signature)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func sign(body []byte) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    testSecret,
		Timestamp: time.Now(),
	}).Header
}

var completedSession = []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","data":{"object":{"id":"cs_1","object":"checkout.session","metadata":{"PendingOrderId":"ord_42"},"payment_intent":"pi_9","customer":"cus_7"}}}`)

func TestWebhookEngine_HTTPFulfillment(t *testing.T) {
	t.Run("completed session fulfills the order", func(t *testing.T) {
		var calls atomic.Int32
		orders := fakeOrderService(t, &calls, http.StatusNoContent)
		engine := newTestEngine(t, testConfig(orders.URL))

		rec := deliver(engine, completedSession, sign(completedSession))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
		assert.Equal(t, int32(1), calls.Load())
		assert.NotEmpty(t, rec.Header().Get(correlation.HeaderName))
	})

	t.Run("unsigned delivery never reaches the order service", func(t *testing.T) {
		var calls atomic.Int32
		orders := fakeOrderService(t, &calls, http.StatusNoContent)
		engine := newTestEngine(t, testConfig(orders.URL))

		rec := deliver(engine, completedSession, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, webhook.ErrNotSigned.Error(), rec.Body.String())
		assert.Zero(t, calls.Load())
	})

	t.Run("order service failure surfaces as 500", func(t *testing.T) {
		var calls atomic.Int32
		orders := fakeOrderService(t, &calls, http.StatusServiceUnavailable)
		engine := newTestEngine(t, testConfig(orders.URL))

		rec := deliver(engine, completedSession, sign(completedSession))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestWebhookEngine_Probes(t *testing.T) {
	var calls atomic.Int32
	orders := fakeOrderService(t, &calls, http.StatusNoContent)
	engine := newTestEngine(t, testConfig(orders.URL))

	for _, path := range []string{rest.PathLiveness, rest.PathReadiness, rest.PathMetrics} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
	assert.Zero(t, calls.Load())
}

func TestNewFulfillmentBackend(t *testing.T) {
	t.Run("kafka mode", func(t *testing.T) {
		cfg := testConfig("")
		cfg.FulfillmentMode = config.FulfillmentModeKafka
		cfg.KafkaBrokers = []string{"localhost:9092"}
		cfg.KafkaFulfillmentTopic = "orders.fulfillment"

		backend, err := newFulfillmentBackend(cfg)

		require.NoError(t, err)
		assert.NotNil(t, backend.fulfiller)
		assert.Equal(t, "kafka", backend.checker.Name())
		assert.NoError(t, backend.close())
	})

	t.Run("unknown mode", func(t *testing.T) {
		cfg := testConfig("")
		cfg.FulfillmentMode = "grpc"

		_, err := newFulfillmentBackend(cfg)

		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}
