// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// DecisionCreatedEvent represents a decision creation event
// Published to lfx.decisions.decision_created
type DecisionCreatedEvent struct {
	Position int       `json:"position"`
	Decision *Decision `json:"decision"`
}

// VoteCastEvent represents an accepted vote
// Published to lfx.decisions.vote_cast
type VoteCastEvent struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Vote     Vote   `json:"vote"`
	// Tally is the running count after the vote was recorded
	Tally Tally `json:"tally"`
}
