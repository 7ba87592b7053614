// Package derrors provides coded domain errors shared across modules.
//
// Services and domain models return these so handlers can translate outcomes
// into HTTP responses without string matching. Stores return sentinel errors
// (pkg/platform/sentinel) and services wrap them into coded errors here.
package derrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// Generic codes.
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal"

	// CodeInvariantViolation marks a domain invariant breach detected by an
	// aggregate constructor or mutation guard.
	CodeInvariantViolation Code = "invariant_violation"

	// Profile lifecycle codes. These map one-to-one onto the transition and
	// mutation guards of the profile aggregates.
	CodeInvalidState        Code = "invalid_state"
	CodeIncompleteProfile   Code = "incomplete_profile"
	CodeInvalidLicense      Code = "invalid_license"
	CodeArchived            Code = "archived"
	CodeAlreadyArchived     Code = "already_archived"
	CodeInvalidDocumentType Code = "invalid_document_type"
	CodeInvalidRating       Code = "invalid_rating"
)

// Error is a coded domain error with an optional wrapped cause.
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

// New creates a coded error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates a cause with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
		if err == nil {
			return false
		}
	}
	return false
}

// Is delegates to errors.Is so callers need only one import in most files.
func Is(err, target error) bool { return errors.Is(err, target) }

// CodeOf extracts the outermost code, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// httpStatus maps codes to HTTP statuses for the transport layer.
var httpStatus = map[Code]int{
	CodeInvalidInput:        http.StatusBadRequest,
	CodeValidation:          http.StatusBadRequest,
	CodeInvalidDocumentType: http.StatusBadRequest,
	CodeInvalidRating:       http.StatusBadRequest,
	CodeNotFound:            http.StatusNotFound,
	CodeConflict:            http.StatusConflict,
	CodeInvalidState:        http.StatusConflict,
	CodeAlreadyArchived:     http.StatusConflict,
	CodeArchived:            http.StatusConflict,
	CodeIncompleteProfile:   http.StatusUnprocessableEntity,
	CodeInvalidLicense:      http.StatusUnprocessableEntity,
	CodeInvariantViolation:  http.StatusUnprocessableEntity,
	CodeUnauthorized:        http.StatusUnauthorized,
	CodeForbidden:           http.StatusForbidden,
	CodeTimeout:             http.StatusGatewayTimeout,
	CodeInternal:            http.StatusInternalServerError,
}

// ToHTTPStatus converts a code to its HTTP status, defaulting to 500.
func ToHTTPStatus(code Code) int {
	if status, ok := httpStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
