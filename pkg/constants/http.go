// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// AuthorizationHeader is the header name for the authorization
const AuthorizationHeader string = "Authorization"

// BearerPrefix precedes the session token in the authorization header
const BearerPrefix string = "Bearer "

// Export download
const (
	ExportContentType = "text/csv; charset=utf-8"
	ExportDisposition = `attachment; filename="decisoes.csv"`
)
