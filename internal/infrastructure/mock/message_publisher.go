// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
)

// PublishedMessage is a message captured by MockMessagePublisher
type PublishedMessage struct {
	Subject string
	Message any
}

// DefaultPublishedLimit bounds how many messages a mock publisher keeps
const DefaultPublishedLimit = 256

// MockMessagePublisher is a mock implementation of the MessagePublisher interface.
// It logs every message, keeps the most recent ones up to its limit, and can
// be told to fail.
type MockMessagePublisher struct {
	mu        sync.Mutex
	published []PublishedMessage
	limit     int
	attempts  int
	err       error
}

// Ensure MockMessagePublisher implements the MessagePublisher interface
var _ port.MessagePublisher = (*MockMessagePublisher)(nil)

// NewMockMessagePublisher creates a new mock publisher for testing
func NewMockMessagePublisher() *MockMessagePublisher {
	return NewMockMessagePublisherWithLimit(DefaultPublishedLimit)
}

// NewMockMessagePublisherWithLimit creates a mock publisher that keeps at most
// limit messages, dropping the oldest first. A limit below 1 keeps none.
func NewMockMessagePublisherWithLimit(limit int) *MockMessagePublisher {
	return &MockMessagePublisher{limit: max(limit, 0)}
}

// Event publishes a decision event (mock implementation - logs and records)
func (m *MockMessagePublisher) Event(ctx context.Context, subject string, message any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.err != nil {
		return m.err
	}

	if m.limit > 0 {
		if len(m.published) == m.limit {
			copy(m.published, m.published[1:])
			m.published = m.published[:m.limit-1]
		}
		m.published = append(m.published, PublishedMessage{Subject: subject, Message: message})
	}
	slog.InfoContext(ctx, "mock event message published",
		"subject", subject,
	)
	return nil
}

// SetError makes every following Event call fail with err; nil clears it
func (m *MockMessagePublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Published returns the recorded messages, oldest first
func (m *MockMessagePublisher) Published() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PublishedMessage, len(m.published))
	copy(out, m.published)
	return out
}

// Attempts returns how many times Event was called, including failures
func (m *MockMessagePublisher) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}
