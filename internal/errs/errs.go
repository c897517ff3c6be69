// Package errs defines the coded errors shared across rentalhub services.
//
// Every business failure carries a Code so callers can recover without
// string matching. The web layer maps codes to HTTP statuses; services
// attach codes at the point where the outcome is decided.
package errs

import (
	"errors"
	"fmt"
)

// Error codes. Anything without a code resolves to EInternal.
const (
	EInternal     = "internal error"
	ENotFound     = "not found"
	EForbidden    = "forbidden"
	EConflict     = "conflict"     // requested transition violates a state machine
	EInvalid      = "invalid"      // payload fails a structural or numeric precondition
	EUnauthorized = "unauthorized" // no valid credentials presented
)

// Error is a coded error. Code targets automated handlers so recovery can
// occur; Msg is for the operator; Err chains the underlying cause.
type Error struct {
	Code string
	Msg  string
	Err  error
}

// New returns a coded error with a message.
func New(code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Newf returns a coded error with a formatted message.
func Newf(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Wrap returns an EInternal error wrapping err.
func Wrap(err error, msg string) *Error {
	return &Error{Code: EInternal, Msg: msg, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return "<" + e.Code + ">"
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the outermost coded error in err's chain,
// EInternal if the chain carries no code, and "" for a nil error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return EInternal
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Err != nil {
		return ErrorCode(e.Err)
	}
	return EInternal
}

// ErrorMessage returns the human-readable message of the error, or a
// generic message when the chain carries no coded error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return "An internal error has occurred."
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return ErrorMessage(e.Err)
	}
	return "An internal error has occurred."
}
