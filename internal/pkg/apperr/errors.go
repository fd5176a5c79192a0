// Package apperr defines the error categories shared by every domain package.
// Handlers translate them to HTTP responses through response.FromError.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "validation_error"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindAuthorization  Kind = "forbidden"
	KindAuthentication Kind = "unauthorized"
)

// Error is a categorized, user-visible error. Field is optional and names the
// request field the error refers to.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, field and message, so wrapped
// copies of a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Field == t.Field && e.Message == t.Message
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(field, message string) *Error {
	return &Error{Kind: KindNotFound, Field: field, Message: message}
}

func Conflict(field, message string) *Error {
	return &Error{Kind: KindConflict, Field: field, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// Wrap returns a copy of e that carries cause.
func Wrap(e *Error, cause error) *Error {
	c := *e
	c.Err = cause
	return &c
}

// KindOf reports the category of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is categorized as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps a category to its response status. Conflicts are reported
// as 400, matching the API's existing clients.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
