// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/mock"
	errs "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

func newTestSessionManager(t *testing.T) SessionManager {
	t.Helper()
	authenticator, err := auth.NewSharedPasswordAuthenticator("senha123")
	require.NoError(t, err)
	return NewSessionManager(
		WithAuthenticator(authenticator),
		WithSessionClock(func() time.Time { return fixedNow }),
	)
}

func TestSessionManager_Login(t *testing.T) {
	testCases := []struct {
		name      string
		member    string
		secret    string
		wantErrAs any
	}{
		{name: "valid credentials", member: "alice", secret: "senha123"},
		{name: "member is trimmed", member: "  alice ", secret: "senha123"},
		{name: "wrong password", member: "alice", secret: "senha1234", wantErrAs: &errs.Unauthorized{}},
		{name: "empty password", member: "alice", secret: "", wantErrAs: &errs.Unauthorized{}},
		{name: "blank member", member: " ", secret: "senha123", wantErrAs: &errs.Validation{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			manager := newTestSessionManager(t)

			session, err := manager.Login(context.Background(), tc.member, tc.secret)

			if tc.wantErrAs != nil {
				require.Error(t, err)
				assert.ErrorAs(t, err, tc.wantErrAs)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", session.Member)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, fixedNow, session.CreatedAt)
		})
	}
}

func TestSessionManager_ResolveAndLogout(t *testing.T) {
	ctx := context.Background()
	manager := newTestSessionManager(t)

	session, err := manager.Login(ctx, "alice", "senha123")
	require.NoError(t, err)

	resolved, err := manager.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session, resolved)

	// callers cannot change the stored session
	resolved.Member = "mallory"
	again, err := manager.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Member)

	manager.Logout(ctx, session.Token)
	_, err = manager.Resolve(ctx, session.Token)
	var unauthorized errs.Unauthorized
	assert.True(t, errors.As(err, &unauthorized))

	// logging out twice is harmless
	manager.Logout(ctx, session.Token)
}

func TestSessionManager_ResolveUnknownToken(t *testing.T) {
	manager := newTestSessionManager(t)

	for _, token := range []string{"", "not-a-token"} {
		_, err := manager.Resolve(context.Background(), token)

		var unauthorized errs.Unauthorized
		assert.True(t, errors.As(err, &unauthorized), "token %q", token)
	}
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	manager := NewSessionManager(WithAuthenticator(mock.NewMockAuthenticator()))

	alice, err := manager.Login(ctx, "alice", "")
	require.NoError(t, err)
	bob, err := manager.Login(ctx, "bob", "")
	require.NoError(t, err)
	assert.NotEqual(t, alice.Token, bob.Token)

	manager.Logout(ctx, alice.Token)

	resolved, err := manager.Resolve(ctx, bob.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", resolved.Member)
}

func TestSessionManager_TokenGenerator(t *testing.T) {
	manager := NewSessionManager(
		WithAuthenticator(mock.NewMockAuthenticator()),
		WithTokenGenerator(func() string { return "fixed-token" }),
	)

	session, err := manager.Login(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", session.Token)
}

func TestNewSessionToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token := newSessionToken()
		assert.GreaterOrEqual(t, len(token), 40)
		assert.NotContains(t, token, "0")
		assert.NotContains(t, token, "l")
		_, dup := seen[token]
		assert.False(t, dup)
		seen[token] = struct{}{}
	}
}
