// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
)

// ParseDate validates that a string is a calendar date in YYYY-MM-DD format.
// Returns the parsed date at midnight UTC, or zero time and error if invalid.
func ParseDate(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, errors.New(constants.ErrInvalidDateFormat)
	}

	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", constants.ErrInvalidDateFormat, err)
	}

	return t, nil
}

// FormatDate formats a time as a YYYY-MM-DD calendar date.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseTimestamp parses a vote timestamp in YYYY-MM-DD HH:MM:SS format.
// Timestamps carry no zone and are read as UTC.
func ParseTimestamp(timestamp string) (time.Time, error) {
	if timestamp == "" {
		return time.Time{}, errors.New(constants.ErrEmptyTimestamp)
	}

	t, err := time.Parse(constants.TimestampFormat, timestamp)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", constants.ErrInvalidTimestampFormat, err)
	}

	return t, nil
}

// FormatTimestamp formats a time as YYYY-MM-DD HH:MM:SS in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// StampNow normalizes a clock reading to the precision a vote timestamp can
// hold: UTC, whole seconds, no monotonic reading.
func StampNow(now time.Time) time.Time {
	return now.UTC().Truncate(time.Second)
}
