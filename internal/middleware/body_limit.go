// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes bounds request bodies; decision payloads are small
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimitMiddleware caps the request body to limit bytes to prevent
// memory exhaustion. Reads past the limit fail and the handler reports it
// as a bad request.
func BodyLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
