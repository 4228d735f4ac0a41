// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package mock provides mock implementations for testing purposes.
package mock

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
)

// MockAuthenticator accepts every credential. It is meant for local runs
// and tests where login should never be the thing under test.
type MockAuthenticator struct{}

// Authenticate accepts any member and secret
func (m *MockAuthenticator) Authenticate(ctx context.Context, member, _ string) error {
	slog.DebugContext(ctx, "mock authentication accepted",
		"member", member,
	)
	return nil
}

// Strategy names the verification strategy
func (m *MockAuthenticator) Strategy() string {
	return "mock"
}

// NewMockAuthenticator creates a new mock authenticator
func NewMockAuthenticator() port.Authenticator {
	return &MockAuthenticator{}
}
