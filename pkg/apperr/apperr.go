// Package apperr defines the error kinds returned by services and how they map to HTTP.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/morocco-events/backend/internal/i18n"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation         Kind = "validation"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindUnauthenticated    Kind = "unauthenticated"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindInvalidStatus      Kind = "invalid_status"
	KindInvalidTransition  Kind = "invalid_transition"
	KindRateLimited        Kind = "rate_limited"
	KindUnavailable        Kind = "unavailable"
	KindInternal           Kind = "internal"
)

var statusByKind = map[Kind]int{
	KindValidation:         http.StatusBadRequest,
	KindDuplicateEmail:     http.StatusBadRequest,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindUnauthenticated:    http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindInvalidStatus:      http.StatusBadRequest,
	KindInvalidTransition:  http.StatusConflict,
	KindRateLimited:        http.StatusTooManyRequests,
	KindUnavailable:        http.StatusServiceUnavailable,
	KindInternal:           http.StatusInternalServerError,
}

// Error is an application error carrying a message key for localization.
type Error struct {
	Kind    Kind
	Key     i18n.Key
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Key)
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// New creates an error of the given kind.
func New(kind Kind, key i18n.Key) *Error {
	return &Error{Kind: kind, Key: key}
}

// Wrap creates an error of the given kind around a cause.
func Wrap(kind Kind, key i18n.Key, err error) *Error {
	return &Error{Kind: kind, Key: key, Err: err}
}

// WithDetails returns a copy of e with per-field details.
func (e *Error) WithDetails(d map[string]string) *Error {
	cp := *e
	cp.Details = d
	return &cp
}

func Validation(key i18n.Key) *Error { return New(KindValidation, key) }

func NotFound(key i18n.Key) *Error { return New(KindNotFound, key) }

func Forbidden(key i18n.Key) *Error { return New(KindForbidden, key) }

func Unauthenticated(key i18n.Key) *Error { return New(KindUnauthenticated, key) }

// Internal wraps an unexpected failure. Its cause is logged, never returned to clients.
func Internal(err error) *Error { return Wrap(KindInternal, i18n.ErrInternal, err) }

// As extracts an *Error from err. Anything else is reported as Internal.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Is reports whether err is an application error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
