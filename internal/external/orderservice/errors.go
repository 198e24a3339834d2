package orderservice

import "errors"

var (
	// ErrNotFound is returned when the pending order does not exist (HTTP 404).
	ErrNotFound = errors.New("pending order not found")

	// ErrConflict is returned when the order cannot be fulfilled in its current state (HTTP 409).
	ErrConflict = errors.New("pending order conflict")

	// ErrBadRequest is returned when the order service rejects the request (HTTP 400, 422).
	ErrBadRequest = errors.New("bad request")

	// ErrServiceUnavailable is returned on transport errors and HTTP 5xx.
	ErrServiceUnavailable = errors.New("order service unavailable")
)
