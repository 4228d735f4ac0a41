// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines validation constants and formats for the decision service.
package constants

const (
	// DateFormat is the calendar date layout used for deadlines (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is the vote timestamp layout (YYYY-MM-DD HH:MM:SS)
	TimestampFormat = "2006-01-02 15:04:05"
)

// Validation error messages
const (
	ErrTitleRequired          = "title is required"
	ErrMemberRequired         = "member is required"
	ErrInvalidDateFormat      = "invalid date format, expected YYYY-MM-DD"
	ErrInvalidTimestampFormat = "invalid timestamp format, expected YYYY-MM-DD HH:MM:SS"
	ErrEmptyTimestamp         = "timestamp cannot be empty"
	ErrJustificationRequired  = "justification is required for 'Não concordo' and 'Indiferente'"
)
