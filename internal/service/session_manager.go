// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/akamensky/base58"
	"github.com/google/uuid"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/log"
)

// SessionManager creates and resolves member sessions
type SessionManager interface {
	// Login verifies the credential and opens a session for member
	Login(ctx context.Context, member, secret string) (*model.Session, error)

	// Resolve returns the session for token
	Resolve(ctx context.Context, token string) (*model.Session, error)

	// Logout discards the session for token. Unknown tokens are ignored.
	Logout(ctx context.Context, token string)
}

// sessionManagerOption defines a function type for setting options on the session manager
type sessionManagerOption func(*sessionManager)

// WithAuthenticator sets the credential verification strategy
func WithAuthenticator(authenticator port.Authenticator) sessionManagerOption {
	return func(s *sessionManager) {
		s.authenticator = authenticator
	}
}

// WithSessionClock overrides the clock used to stamp sessions
func WithSessionClock(now func() time.Time) sessionManagerOption {
	return func(s *sessionManager) {
		s.now = now
	}
}

// WithTokenGenerator overrides how session tokens are minted
func WithTokenGenerator(generate func() string) sessionManagerOption {
	return func(s *sessionManager) {
		s.newToken = generate
	}
}

// sessionManager keeps sessions in memory; they do not survive a restart
type sessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session

	authenticator port.Authenticator
	now           func() time.Time
	newToken      func() string
}

// NewSessionManager creates a new session manager using the option pattern
func NewSessionManager(opts ...sessionManagerOption) SessionManager {
	s := &sessionManager{
		sessions: make(map[string]*model.Session),
		now:      time.Now,
		newToken: newSessionToken,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the credential and opens a session for member
func (s *sessionManager) Login(ctx context.Context, member, secret string) (*model.Session, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return nil, errors.NewValidation(constants.ErrMemberRequired)
	}

	if err := s.authenticator.Authenticate(ctx, member, secret); err != nil {
		return nil, err
	}

	session := &model.Session{
		Token:     s.newToken(),
		Member:    member,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	slog.InfoContext(ctx, "member logged in",
		"member", member,
		"strategy", s.authenticator.Strategy(),
		"token", log.MaskToken(session.Token),
	)

	copied := *session
	return &copied, nil
}

// Resolve returns the session for token
func (s *sessionManager) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, errors.NewUnauthorized("missing session token")
	}

	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		slog.DebugContext(ctx, "unknown session token", "token", log.MaskToken(token))
		return nil, errors.NewUnauthorized("invalid or expired session")
	}

	copied := *session
	return &copied, nil
}

// Logout discards the session for token
func (s *sessionManager) Logout(ctx context.Context, token string) {
	s.mu.Lock()
	session, ok := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if ok {
		slog.InfoContext(ctx, "member logged out",
			"member", session.Member,
			"token", log.MaskToken(token),
		)
	}
}

// newSessionToken encodes 32 random bytes from two v4 UUIDs as base58 text
func newSessionToken() string {
	first := uuid.New()
	second := uuid.New()
	raw := make([]byte, 0, len(first)+len(second))
	raw = append(raw, first[:]...)
	raw = append(raw, second[:]...)
	return base58.Encode(raw)
}
