// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"
	"time"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

// ValidateVote checks a proposed vote against the voting rules: the choice
// must be known, and dissenting or neutral choices need a non-blank
// justification.
func ValidateVote(choice model.Choice, justification string) error {
	if !choice.IsValid() {
		return errors.NewValidation(fmt.Sprintf("unknown choice %q", string(choice)))
	}
	if choice.RequiresJustification() && utils.IsBlank(justification) {
		return errors.NewValidation(constants.ErrJustificationRequired)
	}
	return nil
}

// TallyVotes counts the decision's votes per choice. Every choice is present
// in the result and the counts add up to the number of votes.
func TallyVotes(decision model.Decision) model.Tally {
	tally := model.NewTally()
	for _, v := range decision.Votes {
		tally[v.Choice]++
	}
	return tally
}

// CastVote returns a copy of the decision with a new vote appended, stamped
// with now. The member is recorded as given. The input decision is never
// modified, so a rejected vote leaves it exactly as it was.
func CastVote(decision model.Decision, member string, choice model.Choice, justification string, now time.Time) (model.Decision, error) {
	if err := ValidateVote(choice, justification); err != nil {
		return model.Decision{}, err
	}

	updated := decision.Clone()
	updated.Votes = append(updated.Votes, model.Vote{
		Member:        member,
		Choice:        choice,
		Justification: justification,
		Timestamp:     utils.StampNow(now),
	})
	return updated, nil
}
