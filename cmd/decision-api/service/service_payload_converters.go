// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
)

// loginPayload is the body of POST /login
type loginPayload struct {
	Member   string `json:"member" binding:"required"`
	Password string `json:"password"`
}

// createDecisionPayload is the body of POST /decisions
type createDecisionPayload struct {
	Title         string `json:"title" binding:"required,max=200"`
	Description   string `json:"description" binding:"max=10000"`
	DocumentsLink string `json:"documents_link" binding:"max=2000"`
	Deadline      string `json:"deadline" binding:"required,isodate"`
}

// castVotePayload is the body of POST /decisions/{position}/votes
type castVotePayload struct {
	Choice        string `json:"choice" binding:"required"`
	Justification string `json:"justification" binding:"max=5000"`
}

// convertCreatePayloadToDomain builds the store input; the creator is the
// logged in member, never a field of the payload
func convertCreatePayloadToDomain(payload *createDecisionPayload, session *model.Session) model.CreateDecisionInput {
	if payload == nil {
		return model.CreateDecisionInput{}
	}
	input := model.CreateDecisionInput{
		Title:         payload.Title,
		Description:   payload.Description,
		DocumentsLink: payload.DocumentsLink,
		Deadline:      payload.Deadline,
	}
	if session != nil {
		input.Creator = session.Member
	}
	return input
}

// convertChoice resolves the literal or alias. Unknown values pass through
// unchanged so the voting rules reject them with their own message.
func convertChoice(raw string) model.Choice {
	if choice, ok := model.ParseChoice(raw); ok {
		return choice
	}
	return model.Choice(raw)
}
