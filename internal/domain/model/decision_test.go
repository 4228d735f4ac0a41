// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Choice
		ok       bool
	}{
		{name: "agree literal", input: "De acordo", expected: ChoiceAgree, ok: true},
		{name: "disagree literal", input: "Não concordo", expected: ChoiceDisagree, ok: true},
		{name: "indifferent literal", input: "Indiferente", expected: ChoiceIndifferent, ok: true},
		{name: "literal in other case", input: "DE ACORDO", expected: ChoiceAgree, ok: true},
		{name: "english alias", input: "disagree", expected: ChoiceDisagree, ok: true},
		{name: "english alias mixed case with padding", input: " Indifferent ", expected: ChoiceIndifferent, ok: true},
		{name: "unknown", input: "Abstain", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := ParseChoice(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, c)
			}
		})
	}
}

func TestChoice_RequiresJustification(t *testing.T) {
	assert.False(t, ChoiceAgree.RequiresJustification())
	assert.True(t, ChoiceDisagree.RequiresJustification())
	assert.True(t, ChoiceIndifferent.RequiresJustification())
}

func TestChoice_IsValid(t *testing.T) {
	for _, c := range Choices() {
		assert.True(t, c.IsValid(), c)
	}
	assert.False(t, Choice("agree").IsValid(), "aliases are not stored values")
	assert.False(t, Choice("").IsValid())
}

func TestDecision_Clone(t *testing.T) {
	original := Decision{
		Title:    "Budget",
		Deadline: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Votes: []Vote{
			{Member: "ana", Choice: ChoiceAgree},
		},
	}

	clone := original.Clone()
	clone.Votes[0].Member = "changed"
	clone.Votes = append(clone.Votes, Vote{Member: "bruno", Choice: ChoiceDisagree})

	assert.Equal(t, "ana", original.Votes[0].Member)
	assert.Len(t, original.Votes, 1)
}

func TestDecision_CloneWithoutVotes(t *testing.T) {
	clone := Decision{Title: "Empty"}.Clone()
	assert.Nil(t, clone.Votes)
}

func TestDecision_Summary(t *testing.T) {
	deadline := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	d := Decision{
		Title:    "Budget",
		Creator:  "ana",
		Deadline: deadline,
		Votes:    []Vote{{Member: "ana"}, {Member: "bruno"}},
	}

	assert.Equal(t, DecisionSummary{
		Position:  3,
		Title:     "Budget",
		Creator:   "ana",
		Deadline:  deadline,
		VoteCount: 2,
	}, d.Summary(3))
}
