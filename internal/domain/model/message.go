// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
)

// MessageAction is a type for the action of a decision event message
type MessageAction string

// MessageAction constants for the action of a decision event message
const (
	// ActionCreated is the action for a decision creation message
	ActionCreated MessageAction = "created"
	// ActionVoted is the action for an accepted vote message
	ActionVoted MessageAction = "voted"
)

// EventMessage is the NATS envelope for decision events
type EventMessage struct {
	Action  MessageAction     `json:"action"`
	Headers map[string]string `json:"headers"`
	Data    map[string]any    `json:"data"`
	// Member is who triggered the event
	Member string `json:"member"`
}

// Build fills the envelope from the context and flattens input into a
// generic JSON object for consumers that do not share the Go types.
func (m *EventMessage) Build(ctx context.Context, input any) (*EventMessage, error) {
	headers := make(map[string]string)
	if requestID, ok := ctx.Value(constants.RequestIDContextKey).(string); ok {
		headers[constants.RequestIDHeader] = requestID
	}
	if session, ok := ctx.Value(constants.SessionContextKey).(*Session); ok && session != nil {
		m.Member = session.Member
	}
	m.Headers = headers

	data, err := json.Marshal(input)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling data into JSON", "error", err)
		return nil, err
	}
	var jsonData map[string]any
	if err := json.Unmarshal(data, &jsonData); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling data into JSON", "error", err)
		return nil, err
	}

	m.Data = jsonData
	return m, nil
}
