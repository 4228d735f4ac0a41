// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

func TestRetryConfig_Delay(t *testing.T) {
	config := NewRetryConfig(6, 100*time.Millisecond, time.Second)

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{attempt: 1, expected: 0},
		{attempt: 2, expected: 100 * time.Millisecond},
		{attempt: 3, expected: 200 * time.Millisecond},
		{attempt: 4, expected: 400 * time.Millisecond},
		{attempt: 5, expected: 800 * time.Millisecond},
		{attempt: 6, expected: time.Second},
		{attempt: 90, expected: time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, config.Delay(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestRetryWithExponentialBackoff(t *testing.T) {
	transient := errs.NewServiceUnavailable("nats down")
	permanent := errs.NewUnexpected("failed to marshal message")

	tests := []struct {
		name          string
		retryable     func(error) bool
		results       []error
		wantCalls     int
		wantErr       error
		wantPermanent bool
	}{
		{
			name:      "first attempt succeeds",
			results:   []error{nil},
			wantCalls: 1,
		},
		{
			name:      "transient failure then success",
			retryable: errs.IsRetryable,
			results:   []error{transient, transient, nil},
			wantCalls: 3,
		},
		{
			name:      "transient failures exhaust attempts",
			retryable: errs.IsRetryable,
			results:   []error{transient, transient, transient},
			wantCalls: 3,
			wantErr:   transient,
		},
		{
			name:          "permanent failure stops at once",
			retryable:     errs.IsRetryable,
			results:       []error{permanent, nil},
			wantCalls:     1,
			wantErr:       permanent,
			wantPermanent: true,
		},
		{
			name:          "permanent after transient",
			retryable:     errs.IsRetryable,
			results:       []error{transient, permanent, nil},
			wantCalls:     2,
			wantErr:       permanent,
			wantPermanent: true,
		},
		{
			name:      "nil predicate retries everything",
			results:   []error{permanent, permanent, nil},
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewRetryConfig(3, time.Millisecond, 2*time.Millisecond).WithRetryable(tt.retryable)

			calls := 0
			err := RetryWithExponentialBackoff(context.Background(), config, func() error {
				result := tt.results[calls]
				calls++
				return result
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantPermanent, !errs.IsRetryable(err))
		})
	}
}

func TestRetryWithExponentialBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := NewRetryConfig(5, time.Hour, time.Hour)

	calls := 0
	err := RetryWithExponentialBackoff(ctx, config, func() error {
		calls++
		cancel()
		return errors.New("bus unreachable")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithExponentialBackoff_NoAttempts(t *testing.T) {
	calls := 0
	err := RetryWithExponentialBackoff(context.Background(), NewRetryConfig(0, time.Millisecond, time.Millisecond), func() error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.Zero(t, calls)
}
