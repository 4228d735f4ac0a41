// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

// readiness reports whether the connection can carry messages
type readiness interface {
	IsReady(ctx context.Context) error
}

// rawPublisher is the subset of *nats.Conn used for core publishing
type rawPublisher interface {
	Publish(subject string, data []byte) error
}

// messagingPublisher implements the MessagePublisher interface using NATS
type messagingPublisher struct {
	client readiness
	conn   rawPublisher
}

// Event publishes decision events consumed by downstream services
func (m *messagingPublisher) Event(ctx context.Context, subject string, message any) error {
	return m.publish(ctx, subject, message, "event")
}

// publish is the common method for publishing messages to NATS
func (m *messagingPublisher) publish(ctx context.Context, subject string, message any, messageType string) error {
	// Check if client is ready
	if err := m.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message to JSON",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewUnexpected("failed to marshal message", err)
	}

	if err := m.conn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "failed to publish message to NATS",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewServiceUnavailable("failed to publish message", err)
	}

	slog.DebugContext(ctx, "message published successfully",
		"subject", subject,
		"message_type", messageType,
		"message_size", len(data),
	)

	return nil
}

// NewMessagePublisher creates a new MessagePublisher using NATS
func NewMessagePublisher(client *NATSClient) port.MessagePublisher {
	return &messagingPublisher{
		client: client,
		conn:   client.conn,
	}
}
