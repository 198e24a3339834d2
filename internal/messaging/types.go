package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps a message with metadata for tracing and routing.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope marshals payload into an envelope. An empty eventID gets a generated one;
// callers pass the provider's event id so consumers can deduplicate redeliveries.
func NewEnvelope(eventID, key, msgType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	if eventID == "" {
		eventID = uuid.New().String()
	}

	return Envelope{
		EventID:   eventID,
		Key:       key,
		Type:      msgType,
		Payload:   data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Publisher sends messages to a message broker.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}
