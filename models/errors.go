package models

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code for graph validation failures.
type Code string

const (
	ErrCodeDuplicateID     Code = "DUPLICATE_ID"
	ErrCodeUnknownEndpoint Code = "UNKNOWN_ENDPOINT"
	ErrCodeUnknownID       Code = "UNKNOWN_ID"
	ErrCodeNonFinite       Code = "NON_FINITE"
	ErrCodeInvalidValue    Code = "INVALID_VALUE"
)

// Error carries a code alongside a human-readable message so callers can
// branch on the failure class without string matching.
type Error struct {
	Code Code
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// NewError creates a coded error with a formatted message.
func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, msg: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error with a code and context message.
func WrapError(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, msg: fmt.Sprintf(format, args...), err: err}
}

// IsCode reports whether err (or anything it wraps) carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
