// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

// Package apperr defines the error taxonomy shared by every core component.
//
// Every error that crosses the core boundary is one of four kinds, each
// carrying a stable name, a human-readable message, a suggested corrective
// action, and an HTTP-style status code. The original low-level cause is
// retained for internal diagnostics via errors.Unwrap but is never part of
// the rendered message.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the stable discriminator attached to every core error.
type Kind string

// The four error kinds. The boundary layer matches on these exhaustively.
const (
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFoundError"
	KindUnauthorized Kind = "UnauthorizedError"
	KindService      Kind = "ServiceError"
)

// Messages for kinds whose external rendering is fixed.
const (
	serviceMessage = "The service is temporarily unavailable."
	serviceAction  = "Try again in a few moments."
)

// Error is the single error type produced by the core. Message and Action
// are safe to render externally; the wrapped cause is not.
type Error struct {
	Kind    Kind
	Message string
	Action  string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Unwrap exposes the internal cause for diagnostics and errors.Is chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Validation reports a client-correctable input problem.
func Validation(message, action string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: message,
		Action:  action,
		Status:  http.StatusBadRequest,
	}
}

// NotFound reports a lookup that matched zero rows.
func NotFound(message, action string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: message,
		Action:  action,
		Status:  http.StatusNotFound,
	}
}

// Unauthorized reports a failed credential or session check.
func Unauthorized(message, action string) *Error {
	return &Error{
		Kind:    KindUnauthorized,
		Message: message,
		Action:  action,
		Status:  http.StatusUnauthorized,
	}
}

// Service reports an infrastructure failure. The cause is kept internal;
// the external message is always generic.
func Service(cause error) *Error {
	return &Error{
		Kind:    KindService,
		Message: serviceMessage,
		Action:  serviceAction,
		Status:  http.StatusServiceUnavailable,
		cause:   cause,
	}
}

// As extracts the taxonomy error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind attached to err, or "" if err carries none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
