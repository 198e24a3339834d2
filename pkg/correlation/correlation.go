// Package correlation provides utilities for correlation ID propagation.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the correlation ID.
// The same key is used for Kafka message headers.
const HeaderName = "X-Correlation-ID"

type contextKey struct{}

// FromContext returns the correlation ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithID returns a copy of ctx carrying id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// NewID generates a new correlation ID (UUID v4).
func NewID() string {
	return uuid.New().String()
}

// Ensure returns ctx unchanged when it already carries an ID,
// otherwise a copy with a freshly generated one.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := NewID()
	return WithID(ctx, id), id
}
