// Package domainerrors provides code-carrying errors shared by all services.
//
// Services return *Error values built with New or Wrap; the HTTP layer maps
// the code to a status via HTTPStatus. Kind identifies the exact failure for
// callers that need to distinguish siblings sharing one status (for example
// country-not-found vs. state-not-found).
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeBadRequest   Code = "bad_request"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeDuplicate    Code = "duplicate"
	CodeRateLimited  Code = "rate_limited"
	CodeInternal     Code = "internal_error"
)

// Kind names one failure from the service's closed taxonomy.
type Kind string

const (
	KindInvalidPagination     Kind = "InvalidPagination"
	KindCountryNotFound       Kind = "CountryNotFound"
	KindCountryUnsupported    Kind = "CountryUnsupported"
	KindStateNotFound         Kind = "StateNotFound"
	KindCoordinatesOutOfRange Kind = "CoordinatesOutOfRange"
	KindDuplicateUserDetails  Kind = "DuplicateUserDetails"
	KindUserDetailsNotFound   Kind = "UserDetailsNotFound"
	KindInvalidGenderID       Kind = "InvalidGenderId"
	KindRateLimited           Kind = "RateLimited"
	KindNotAuthorized         Kind = "NotAuthorized"
)

// Error is a domain error with a transport code and an optional kind.
type Error struct {
	Code    Code
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is match on code and, when set on the target, kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return t.Code == e.Code
}

// New builds a domain error from a code and a human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewKind builds a domain error carrying an explicit taxonomy kind.
func NewKind(code Code, kind Kind, message string) *Error {
	return &Error{Code: code, Kind: kind, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or anything it wraps carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// HasKind reports whether err or anything it wraps carries the given kind.
func HasKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Is re-exports errors.Is so callers need a single import.
func Is(err, target error) bool { return errors.Is(err, target) }

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// KindOf extracts the kind from err; empty when none is set.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf extracts the message from err, falling back to err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a code to its HTTP status. Duplicate maps to 422 rather
// than 409: clients distinguish "row already exists" from write conflicts.
func HTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeDuplicate:
		return http.StatusUnprocessableEntity
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
