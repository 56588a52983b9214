// Package apperr provides the error codes shared by the catalog, matrix,
// preview and rule engine packages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeInternal          Code = "internal_error"
	CodeInvalidInput      Code = "invalid_input"
	CodeNotFound          Code = "not_found"
	CodeInvalidRule       Code = "invalid_rule"
	CodeRenderUnavailable Code = "render_unavailable"
	CodeCancelled         Code = "cancelled"
)

// Sentinels for errors.Is checks. Any *Error with the same code matches.
var (
	ErrInvalidInput      = &Error{Code: CodeInvalidInput}
	ErrNotFound          = &Error{Code: CodeNotFound}
	ErrInvalidRule       = &Error{Code: CodeInvalidRule}
	ErrRenderUnavailable = &Error{Code: CodeRenderUnavailable}
	ErrCancelled         = &Error{Code: CodeCancelled}
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error carrying the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New returns an error with the given code and message.
func New(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to err.
func Wrap(code Code, err error, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the message of the first *Error in err's chain, falling
// back to err.Error().
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a code to the status the API layer responds with.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput, CodeInvalidRule:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRenderUnavailable:
		return http.StatusBadGateway
	case CodeCancelled:
		// nginx's "client closed request"
		return 499
	default:
		return http.StatusInternalServerError
	}
}
