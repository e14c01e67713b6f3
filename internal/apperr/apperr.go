// Package apperr defines the error kinds surfaced by the HTTP API and their
// mapping to status codes and machine-readable identifiers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a stable, machine-readable error class.
type Kind string

// Error kinds.
const (
	KindValidation      Kind = "validation_error"
	KindConflict        Kind = "conflict"
	KindUnauthenticated Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindRateLimited     Kind = "rate_limited"
	KindExternalService Kind = "external_service_error"
	KindDatabase        Kind = "database_error"
	KindInternal        Kind = "internal_error"
)

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error is an API error carrying its kind and a translation key.
type Error struct {
	Kind       Kind
	MessageKey string
	Fields     []string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Kind, e.MessageKey, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Kind, e.MessageKey)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, messageKey string) *Error {
	return &Error{Kind: kind, MessageKey: messageKey}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, messageKey string, err error) *Error {
	return &Error{Kind: kind, MessageKey: messageKey, Err: err}
}

// Validation reports malformed caller input.
func Validation(messageKey string, fields ...string) *Error {
	return &Error{Kind: KindValidation, MessageKey: messageKey, Fields: fields}
}

// Conflict reports a uniqueness clash such as an existing email.
func Conflict(messageKey string) *Error { return New(KindConflict, messageKey) }

// Unauthenticated reports a missing, invalid, or expired credential.
func Unauthenticated(messageKey string) *Error { return New(KindUnauthenticated, messageKey) }

// Forbidden reports insufficient tier, quota, or ownership.
func Forbidden(messageKey string) *Error { return New(KindForbidden, messageKey) }

// NotFound reports an unknown resource.
func NotFound(messageKey string) *Error { return New(KindNotFound, messageKey) }

// Database wraps a persistence failure.
func Database(err error) *Error { return Wrap(KindDatabase, "errors.database", err) }

// As extracts an *Error from err. Unknown errors become internal errors.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(KindInternal, "errors.internal", err)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == k
}
