// Package domainerrors defines the coded errors the core returns to callers.
//
// Stores report infrastructure facts through pkg/platform/sentinel; services
// translate those facts into one of the codes below. Handlers map codes to
// HTTP statuses with ToHTTPStatus and never inspect error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeNotFound: a referenced document, request, review, or job is absent.
	CodeNotFound Code = "not_found"
	// CodeInvalidState: the operation is not valid for the current
	// lifecycle or assignment state.
	CodeInvalidState Code = "invalid_state"
	// CodeInvalidRequest: a precondition violation such as self-redemption,
	// a duplicate assignment, or a non-assignee responding.
	CodeInvalidRequest Code = "invalid_request"
	// CodeInsufficientBalance: the reader's point balance does not cover the price.
	CodeInsufficientBalance Code = "insufficient_balance"
	// CodeAlreadyRedeemed: the (reader, document) pair already holds a redemption.
	CodeAlreadyRedeemed Code = "already_redeemed"
	// CodeConflict: a concurrent-write collision or a write against an
	// already-terminal external job.
	CodeConflict Code = "conflict"
	// CodeInvalidInput: malformed input at a trust boundary (bad UUID, bad JSON).
	CodeInvalidInput Code = "invalid_input"

	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// Error is a coded domain error. Message is safe to return to API callers.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and caller-safe message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds a domain error that preserves the underlying cause for logs
// while exposing only the message to callers.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err is (or wraps) a domain error with the given code.
func HasCode(err error, code Code) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to the HTTP status the transport layer writes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeAlreadyRedeemed, CodeConflict:
		return http.StatusConflict
	case CodeInvalidRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInsufficientBalance:
		return http.StatusPaymentRequired
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
