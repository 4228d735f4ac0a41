// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"strconv"
	"strings"
)

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParsePosition converts a 1-based positional identifier from its textual
// form. Range checks against the current collection are left to the caller,
// so "0" and "-3" parse successfully.
func ParsePosition(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

// Share returns count/total, or 0 when total is 0.
func Share(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
