package orderservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CakeshopWebhooks/pkg/correlation"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	maxErrorBody         = 4 * 1024
)

// FulfillOrderRequest is the body of POST /internal/orders/{id}/fulfill.
type FulfillOrderRequest struct {
	PaymentIntentID   string `json:"payment_intent_id"`
	CustomerID        string `json:"customer_id"`
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the order service's internal API. Calls are made once;
// the provider's own redelivery is the retry mechanism.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FulfillOrder asks the order service to fulfill a pending order.
// idempotencyKey is forwarded so the order service can recognise redeliveries.
func (c *Client) FulfillOrder(ctx context.Context, pendingOrderID string, req FulfillOrderRequest, idempotencyKey string) error {
	path := "/internal/orders/" + url.PathEscape(pendingOrderID) + "/fulfill"
	return c.post(ctx, path, req, idempotencyKey)
}

// HealthURL is probed by the readiness check.
func (c *Client) HealthURL() string {
	return c.baseURL + "/health/live"
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any, idempotencyKey string) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set(headerIdempotencyKey, idempotencyKey)
	}
	if corrID := correlation.FromContext(ctx); corrID != "" {
		httpReq.Header.Set(correlation.HeaderName, corrID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return handleResponse(resp)
}

func handleResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrBadRequest, string(body))
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, string(body))
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d, body: %s", ErrServiceUnavailable, resp.StatusCode, string(body))
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}
}
