package checkout

import "errors"

var (
	ErrMalformedSession      = errors.New("malformed checkout session payload")
	ErrMissingPendingOrderID = errors.New("missing metadata key \"" + MetadataPendingOrderID + "\"")
	ErrFulfillmentFailed     = errors.New("order fulfillment failed")
)

// SignatureError is returned by a Verifier when the delivery cannot be authenticated:
// missing or malformed signature header, signature mismatch, expired timestamp,
// or a body that is not a provider event.
type SignatureError struct {
	Err error
}

func NewSignatureError(err error) *SignatureError {
	return &SignatureError{Err: err}
}

// Error returns the verifier's message unchanged; it is sent back to the provider.
func (e *SignatureError) Error() string {
	return e.Err.Error()
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}
