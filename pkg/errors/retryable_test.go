// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"Validation", NewValidation("unknown choice"), false},
		{"NotFound", NewNotFound("decision 3 not found"), false},
		{"Unauthorized", NewUnauthorized("invalid session"), false},
		{"Unexpected", NewUnexpected("failed to marshal message"), false},
		{"wrapped Unexpected", fmt.Errorf("publish: %w", NewUnexpected("encode")), false},
		{"ServiceUnavailable", NewServiceUnavailable("NATS client is not ready"), true},
		{"wrapped ServiceUnavailable", fmt.Errorf("publish: %w", NewServiceUnavailable("timeout")), true},
		{"Conflict", NewConflict("state changed by another writer"), true},
		{"untyped", errors.New("connection reset"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
