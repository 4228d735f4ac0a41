// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	lfxerrors "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Message string `json:"message"`
}

// wrapError maps a service error to its HTTP status and response body
func wrapError(ctx context.Context, err error) (int, errorResponse) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "request failed", "error", err, "status", status)
	} else {
		slog.WarnContext(ctx, "request rejected", "error", err, "status", status)
	}
	return status, errorResponse{Message: err.Error()}
}

func statusFor(err error) int {
	var (
		validation   lfxerrors.Validation
		unauthorized lfxerrors.Unauthorized
		notFound     lfxerrors.NotFound
		conflict     lfxerrors.Conflict
		unavailable  lfxerrors.ServiceUnavailable
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
