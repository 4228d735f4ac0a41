// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// MessagePublisher defines the interface for publishing decision events
// This interface is implemented by the NATS messaging infrastructure so that
// downstream services can react to new decisions and votes
type MessagePublisher interface {
	// Event publishes a domain event message on the given subject
	Event(ctx context.Context, subject string, message any) error
}
