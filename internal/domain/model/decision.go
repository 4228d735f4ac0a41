// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the decision service.
package model

import (
	"strings"
	"time"
)

// Choice is a member's position on a decision. The values are the literal
// strings persisted and exported.
type Choice string

// Choice constants
const (
	ChoiceAgree       Choice = "De acordo"
	ChoiceDisagree    Choice = "Não concordo"
	ChoiceIndifferent Choice = "Indiferente"
)

// choiceAliases maps the accepted inputs, lower-cased, to a Choice.
var choiceAliases = map[string]Choice{
	strings.ToLower(string(ChoiceAgree)):       ChoiceAgree,
	strings.ToLower(string(ChoiceDisagree)):    ChoiceDisagree,
	strings.ToLower(string(ChoiceIndifferent)): ChoiceIndifferent,

	"agree":       ChoiceAgree,
	"disagree":    ChoiceDisagree,
	"indifferent": ChoiceIndifferent,
}

// Choices returns every choice in display order.
func Choices() []Choice {
	return []Choice{ChoiceAgree, ChoiceDisagree, ChoiceIndifferent}
}

// ParseChoice resolves a choice from its literal or English alias,
// case-insensitively. The second result is false for anything else.
func ParseChoice(raw string) (Choice, bool) {
	c, ok := choiceAliases[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// IsValid reports whether c is one of the three known choices.
func (c Choice) IsValid() bool {
	switch c {
	case ChoiceAgree, ChoiceDisagree, ChoiceIndifferent:
		return true
	}
	return false
}

// RequiresJustification reports whether a vote with this choice must carry
// a non-blank justification.
func (c Choice) RequiresJustification() bool {
	return c == ChoiceDisagree || c == ChoiceIndifferent
}

// Vote is one member's recorded position on a decision.
type Vote struct {
	Member        string    `json:"member"`
	Choice        Choice    `json:"choice"`
	Justification string    `json:"justification"`
	Timestamp     time.Time `json:"timestamp"`
}

// Decision is a topic put to the group for a vote. Votes are append-only and
// kept in the order they were accepted.
type Decision struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DocumentsLink string    `json:"documents_link"`
	Deadline      time.Time `json:"deadline"`
	Creator       string    `json:"creator"`
	Votes         []Vote    `json:"votes"`
}

// Clone returns a copy of the decision that shares no vote storage with d.
func (d Decision) Clone() Decision {
	c := d
	if d.Votes != nil {
		c.Votes = make([]Vote, len(d.Votes))
		copy(c.Votes, d.Votes)
	}
	return c
}

// DecisionSummary is the list view of a decision.
type DecisionSummary struct {
	Position  int       `json:"position"`
	Title     string    `json:"title"`
	Creator   string    `json:"creator"`
	Deadline  time.Time `json:"deadline"`
	VoteCount int       `json:"vote_count"`
}

// Summary builds the list view of d at the given 1-based position.
func (d Decision) Summary(position int) DecisionSummary {
	return DecisionSummary{
		Position:  position,
		Title:     d.Title,
		Creator:   d.Creator,
		Deadline:  d.Deadline,
		VoteCount: len(d.Votes),
	}
}

// CreateDecisionInput carries the fields a member supplies when proposing a
// decision. Deadline is the raw YYYY-MM-DD text.
type CreateDecisionInput struct {
	Title         string
	Description   string
	DocumentsLink string
	Deadline      string
	Creator       string
}
