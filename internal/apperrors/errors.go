package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure at the handler boundary
type Kind int

const (
	// KindInternal is an unexpected failure (500)
	KindInternal Kind = iota
	// KindValidation is malformed or missing required input (400)
	KindValidation
	// KindConfiguration is a missing required credential or setting (500)
	KindConfiguration
	// KindUpstream is a non-success answer from the completion API (relayed status)
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Common sentinel errors
var (
	// ErrMissingCredential is returned when the upstream API key is not set
	ErrMissingCredential = errors.New("missing upstream credential")

	// ErrInvalidBody is returned when a request body is not valid JSON
	ErrInvalidBody = errors.New("invalid request body")

	// ErrUpstreamStatus is returned when the upstream answers with a non-2xx status
	ErrUpstreamStatus = errors.New("upstream returned non-success status")

	// ErrUpstreamTimeout is returned when the upstream call exceeds its deadline
	ErrUpstreamTimeout = errors.New("upstream request timed out")
)

// Error is a request failure with enough context to render a response
type Error struct {
	Kind       Kind        // Failure class
	Op         string      // Operation that failed
	Message    string      // Message exposed to the caller
	StatusCode int         // Status to relay; only set for upstream failures
	Detail     interface{} // Optional payload exposed to the caller
	Err        error       // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the response status for the error
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		if e.StatusCode > 0 {
			return e.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a validation error
func Validation(op, message string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message, Err: err}
}

// Configuration creates a configuration error
func Configuration(op, message string, err error) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Message: message, Err: err}
}

// Upstream creates an upstream error relaying status and detail
func Upstream(op, message string, status int, detail interface{}, err error) *Error {
	return &Error{Kind: KindUpstream, Op: op, Message: message, StatusCode: status, Detail: detail, Err: err}
}

// Internal creates an internal error
func Internal(op, message string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus returns the response status for any error
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsTimeout returns true if err is an upstream timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout)
}
