package booking

import (
	"errors"
	"fmt"
)

// Sentinel failures of the booking gateway. Each malformed-response case gets
// its own error because precise diagnostics matter more than generic failure
// text in a payment flow.
var (
	ErrMissingLawyer         = errors.New("no lawyer selected for booking")
	ErrMissingConsultationID = errors.New("booking response missing consultation id")
	ErrInvalidFee            = errors.New("booking response carried a non-positive fee")
	ErrMissingCheckoutURL    = errors.New("payment session response missing checkout URL")
	ErrRequestInFlight       = errors.New("a booking request is already in flight")
	ErrNoSavedJourney        = errors.New("no saved booking journey")
	ErrCancelNotConfirmed    = errors.New("cancel requires explicit confirmation")
)

// ValidationError reports a missing or malformed journey field. It blocks the
// details -> review transition and is fully recoverable by user correction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// GatewayError is a non-2xx or otherwise failed upstream call, carrying as
// much diagnostic detail as the response provided.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("booking gateway error (status %d): %s", e.StatusCode, e.Message)
}
