package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the Yelp failure taxonomy - use with errors.Is()
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrBadRequest     = errors.New("bad request")
	ErrUpstream       = errors.New("upstream API error")
	ErrTimeout        = errors.New("request timed out")
	ErrNetwork        = errors.New("network error")
	ErrMisuse         = errors.New("client misuse")
	ErrValidation     = errors.New("validation failed")
)

// APIError carries a translated upstream failure. Kind is one of the
// sentinel errors above; Cause preserves the original error for
// diagnostics and is reachable through errors.Unwrap chains.
type APIError struct {
	Kind    error
	Message string
	Status  int // upstream HTTP status, 0 for transport-level failures
	Cause   error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Is allows errors.Is() to match against the taxonomy sentinels
func (e *APIError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap exposes the original cause
func (e *APIError) Unwrap() error {
	return e.Cause
}

// NewAPIError creates a translated error of the given kind
func NewAPIError(kind error, message string, cause error) *APIError {
	return &APIError{Kind: kind, Message: message, Cause: cause}
}
