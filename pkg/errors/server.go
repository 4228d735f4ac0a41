// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import "errors"

// Unexpected is a failure that repeating the call will not fix, such as a
// decision document that no longer decodes or an event that cannot be
// encoded.
type Unexpected struct {
	base
}

// Error returns the error message for Unexpected.
func (u Unexpected) Error() string {
	return u.error()
}

// NewUnexpected creates a new Unexpected error with the provided message.
func NewUnexpected(message string, err ...error) Unexpected {
	return Unexpected{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// ServiceUnavailable means the state store or the message bus could not be
// reached. The same call may succeed later.
type ServiceUnavailable struct {
	base
}

// Error returns the error message for ServiceUnavailable.
func (su ServiceUnavailable) Error() string {
	return su.error()
}

// NewServiceUnavailable creates a new ServiceUnavailable error with the provided message.
func NewServiceUnavailable(message string, err ...error) ServiceUnavailable {
	return ServiceUnavailable{
		base: base{
			message: message,
			err:     errors.Join(err...),
		},
	}
}

// IsRetryable reports whether err is worth another attempt. Rejected input,
// missing decisions, bad credentials and Unexpected failures are permanent.
// ServiceUnavailable, Conflict and untyped errors are retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.As(err, &Validation{}),
		errors.As(err, &NotFound{}),
		errors.As(err, &Unauthorized{}),
		errors.As(err, &Unexpected{}):
		return false
	}
	return true
}
