// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subject constants for message publishing
const (
	DecisionCreatedSubject = "lfx.decisions.decision_created"
	VoteCastSubject        = "lfx.decisions.vote_cast"
)

// Event publishing retry configuration
const (
	PublishMaxRetries     = 3
	PublishRetryBaseDelay = 100  // milliseconds
	PublishRetryMaxDelay  = 2000 // milliseconds
)
