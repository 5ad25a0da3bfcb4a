package storefront

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where an operation failed
type ErrorKind string

// Failure taxonomy shared by every network-facing operation
const (
	// KindNetwork means the request could not be sent or the response never arrived
	KindNetwork ErrorKind = "network_error"
	// KindServer means the server answered with a non-2xx status
	KindServer ErrorKind = "server_error"
	// KindValidation means a local precondition failed before any network call
	KindValidation ErrorKind = "validation_error"
	// KindUnexpectedShape means the response decoded but was not the expected shape
	KindUnexpectedShape ErrorKind = "unexpected_shape"
)

// Error is the outcome type for failed storefront operations.
// Status carries the HTTP status for server errors, zero otherwise.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError creates a storefront error
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the ErrorKind from an error, or "" for nil and foreign errors
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// StatusOf extracts the HTTP status from a server error, zero otherwise
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// errMessage strips the kind prefix for user-facing status text
func errMessage(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
