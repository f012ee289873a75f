package provider

import (
	"errors"
	"time"
)

type ErrorKind string

const (
	ErrorKindValidation  ErrorKind = "validation"
	ErrorKindRateLimited ErrorKind = "rate_limited"
	ErrorKindTransient   ErrorKind = "transient"
	ErrorKindFatal       ErrorKind = "fatal"
)

// Error is a classified provider error. RetryAfter is only meaningful for
// ErrorKindRateLimited and holds the provider's backoff hint, if any.
type Error struct {
	Kind ErrorKind

	Message string

	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{
		Kind: ErrorKindValidation,

		Message: message,
	}
}

func NewRateLimitError(message string, retryAfter time.Duration) *Error {
	return &Error{
		Kind: ErrorKindRateLimited,

		Message:    message,
		RetryAfter: retryAfter,
	}
}

func NewTransientError(message string) *Error {
	return &Error{
		Kind: ErrorKindTransient,

		Message: message,
	}
}

func NewFatalError(message string) *Error {
	return &Error{
		Kind: ErrorKindFatal,

		Message: message,
	}
}

// KindOf classifies an arbitrary error. Unclassified errors count as fatal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var e *Error

	if errors.As(err, &e) {
		return e.Kind
	}

	return ErrorKindFatal
}

func IsRateLimited(err error) (time.Duration, bool) {
	var e *Error

	if errors.As(err, &e) && e.Kind == ErrorKindRateLimited {
		return e.RetryAfter, true
	}

	return 0, false
}
