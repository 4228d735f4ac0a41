// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// Authenticator verifies the credential a member presents at login
type Authenticator interface {
	// Authenticate returns an error when the credential is not accepted
	Authenticate(ctx context.Context, member, secret string) error

	// Strategy names the verification strategy, for logs
	Strategy() string
}
