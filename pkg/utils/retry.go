// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package utils provides utility functions for the decision service.
package utils

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig holds retry configuration for operations
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	// Retryable decides whether a failed attempt is tried again.
	// nil retries every error.
	Retryable func(error) bool
}

// NewRetryConfig creates a RetryConfig that retries every error
func NewRetryConfig(maxAttempts int, baseDelay, maxDelay time.Duration) RetryConfig {
	return RetryConfig{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		MaxDelay:    maxDelay,
	}
}

// WithRetryable returns a copy of the config that stops at the first error
// for which retryable returns false.
func (c RetryConfig) WithRetryable(retryable func(error) bool) RetryConfig {
	c.Retryable = retryable
	return c
}

// Delay returns the wait before the given attempt (1-based). The first
// attempt runs immediately, later ones wait BaseDelay * 2^(attempt-2),
// capped at MaxDelay.
func (c RetryConfig) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	shift := attempt - 2
	if shift > 30 {
		return c.MaxDelay
	}
	delay := c.BaseDelay << uint(shift)
	if delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

func (c RetryConfig) shouldRetry(err error) bool {
	return c.Retryable == nil || c.Retryable(err)
}

// RetryWithExponentialBackoff calls fn until it succeeds, the attempts run
// out, fn returns an error the config does not retry, or ctx is done.
// The returned error wraps the last failure.
func RetryWithExponentialBackoff(ctx context.Context, config RetryConfig, fn func() error) error {
	if config.MaxAttempts < 1 {
		return fmt.Errorf("retry: max attempts must be at least 1, got %d", config.MaxAttempts)
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if delay := config.Delay(attempt); delay > 0 {
			slog.WarnContext(ctx, "retrying operation",
				"attempt", attempt,
				"total_attempts", config.MaxAttempts,
				"retry_delay_ms", delay.Milliseconds(),
			)

			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			}
		}

		err := fn()
		if err == nil {
			if attempt > 1 {
				slog.InfoContext(ctx, "retry succeeded", "attempt", attempt)
			}
			return nil
		}
		lastErr = err

		if !config.shouldRetry(err) {
			slog.ErrorContext(ctx, "operation failed permanently",
				"attempt", attempt,
				"error", err,
			)
			return fmt.Errorf("permanent failure on attempt %d: %w", attempt, err)
		}

		slog.ErrorContext(ctx, "operation attempt failed",
			"attempt", attempt,
			"total_attempts", config.MaxAttempts,
			"error", err,
		)
	}

	return fmt.Errorf("failed after %d attempts: %w", config.MaxAttempts, lastErr)
}
