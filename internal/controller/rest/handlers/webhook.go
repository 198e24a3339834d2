package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"CakeshopWebhooks/internal/domain/checkout"
	"CakeshopWebhooks/internal/external/stripe"

	"github.com/gin-gonic/gin"
)

// WebhookProcessor handles one authenticated-or-not provider delivery.
type WebhookProcessor interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type WebhookHandler struct {
	processor    WebhookProcessor
	maxBodyBytes int64
}

func NewWebhookHandler(processor WebhookProcessor, maxBodyBytes int64) *WebhookHandler {
	return &WebhookHandler{processor: processor, maxBodyBytes: maxBodyBytes}
}

// Webhook answers 200 with an empty body when the delivery is authentic, whatever its type.
// Rejected deliveries get 400 with the reason as plain text.
func (h *WebhookHandler) Webhook(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	// The signature covers these exact bytes; nothing may parse the body before verification.
	payload, err := c.GetRawData()
	if err != nil {
		slog.WarnContext(c.Request.Context(), "Failed to read webhook body", slog.Any("error", err))
		c.String(http.StatusBadRequest, "failed to read request body: %v", err)
		return
	}

	err = h.processor.HandleWebhook(c.Request.Context(), payload, c.GetHeader(stripe.HeaderSignature))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (h *WebhookHandler) writeError(c *gin.Context, err error) {
	var sigErr *checkout.SignatureError

	switch {
	case errors.As(err, &sigErr):
		c.String(http.StatusBadRequest, "%s", sigErr.Error())
	case errors.Is(err, checkout.ErrMalformedSession), errors.Is(err, checkout.ErrMissingPendingOrderID):
		c.String(http.StatusBadRequest, "%s", err.Error())
	case errors.Is(err, checkout.ErrFulfillmentFailed):
		c.String(http.StatusInternalServerError, "%s", checkout.ErrFulfillmentFailed.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "Unexpected webhook error", slog.Any("error", err))
		c.String(http.StatusInternalServerError, "%s", http.StatusText(http.StatusInternalServerError))
	}
}
