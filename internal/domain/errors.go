package domain

import (
	"encoding/json"
	"fmt"
)

// ValidationError is returned when a required field is missing or malformed
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// AuthError is returned when no usable credential exists for a shop
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

var (
	// ErrMissingShop is returned when a shop identifier is required but absent
	ErrMissingShop = &ValidationError{Message: "Missing shop parameter"}

	// ErrNoCredential is returned when the session store holds no access token for a shop
	ErrNoCredential = &AuthError{Message: "Access token not found for shop"}
)

// UpstreamError is returned when the Admin API answers with a failure.
// Errors carries the upstream error list verbatim (GraphQL errors or mutation userErrors).
// UserFacing marks failures caused by the request content rather than by transport or the platform.
type UpstreamError struct {
	Operation  string
	Status     int
	Body       string
	Message    string
	Errors     json.RawMessage
	UserFacing bool
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("shopify %s failed: status %d: %s", e.Operation, e.Status, msg)
	}
	return fmt.Sprintf("shopify %s failed: %s", e.Operation, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
