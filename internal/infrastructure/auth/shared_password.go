// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package auth provides login credential verification strategies.
package auth

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

// StrategySharedPassword is the name logged for the shared password strategy
const StrategySharedPassword = "shared-password"

// SharedPasswordAuthenticator checks every member against one group-wide
// password. It proves group membership only, not identity: any member can
// log in under any name. Treat it as low assurance.
type SharedPasswordAuthenticator struct {
	password []byte
}

// Ensure SharedPasswordAuthenticator implements the Authenticator interface
var _ port.Authenticator = (*SharedPasswordAuthenticator)(nil)

// NewSharedPasswordAuthenticator creates an authenticator for the given password.
// An empty password is rejected.
func NewSharedPasswordAuthenticator(password string) (*SharedPasswordAuthenticator, error) {
	if password == "" {
		return nil, errors.NewValidation("shared password must not be empty")
	}
	return &SharedPasswordAuthenticator{password: []byte(password)}, nil
}

// Authenticate compares the secret with the shared password in constant time
func (a *SharedPasswordAuthenticator) Authenticate(ctx context.Context, member, secret string) error {
	if subtle.ConstantTimeCompare(a.password, []byte(secret)) != 1 {
		slog.WarnContext(ctx, "login rejected, wrong shared password",
			"member", member,
		)
		return errors.NewUnauthorized("invalid credentials")
	}
	return nil
}

// Strategy names the verification strategy
func (a *SharedPasswordAuthenticator) Strategy() string {
	return StrategySharedPassword
}
