// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"io/fs"
	"testing"
)

// positionErr is a test error type to demonstrate errors.As functionality
type positionErr struct {
	position int
	msg      string
}

func (p positionErr) Error() string {
	return p.msg
}

// TestErrorsIsAndAs demonstrates how the Unwrap method enables
// better error handling with errors.Is and errors.As
func TestErrorsIsAndAs(t *testing.T) {
	// Simulate a missing state file
	fsErr := fs.ErrNotExist

	serviceErr := NewNotFound("decision state not found", fsErr)

	if !errors.Is(serviceErr, fs.ErrNotExist) {
		t.Error("Should be able to identify fs.ErrNotExist using errors.Is")
	}

	originalErr := positionErr{position: 7, msg: "position out of range"}
	wrappedErr := NewValidation("validation failed", originalErr)

	var extracted positionErr
	if !errors.As(wrappedErr, &extracted) {
		t.Error("Should be able to extract positionErr using errors.As")
	} else {
		if extracted.position != 7 {
			t.Errorf("Expected position 7, got %d", extracted.position)
		}
	}
}

func TestErrorMessageFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "message only",
			err:      NewValidation("title is required"),
			expected: "title is required",
		},
		{
			name:     "message with cause",
			err:      NewUnauthorized("login rejected", errors.New("password mismatch")),
			expected: "login rejected: password mismatch",
		},
		{
			name:     "conflict with cause",
			err:      NewConflict("state changed", errors.New("wrong last sequence")),
			expected: "state changed: wrong last sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}
