// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

// StateDocument is the persisted form of the whole decision collection.
// Field names are part of the on-disk format shared with existing data files.
type StateDocument struct {
	Decisions []DecisionRecord `json:"decisions" msgpack:"decisions"`
}

// DecisionRecord is the persisted form of a Decision.
type DecisionRecord struct {
	Title         string       `json:"titulo" msgpack:"titulo"`
	Description   string       `json:"descricao" msgpack:"descricao"`
	DocumentsLink string       `json:"documentos" msgpack:"documentos"`
	Deadline      string       `json:"data_limite" msgpack:"data_limite"`
	Creator       string       `json:"criador" msgpack:"criador"`
	Votes         []VoteRecord `json:"votos" msgpack:"votos"`
}

// VoteRecord is the persisted form of a Vote.
type VoteRecord struct {
	Member        string `json:"membro" msgpack:"membro"`
	Choice        string `json:"voto" msgpack:"voto"`
	Justification string `json:"justificativa" msgpack:"justificativa"`
	Timestamp     string `json:"data_hora" msgpack:"data_hora"`
}

// NewStateDocument builds the persisted form of a decision collection.
func NewStateDocument(decisions []Decision) *StateDocument {
	doc := &StateDocument{Decisions: make([]DecisionRecord, 0, len(decisions))}
	for _, d := range decisions {
		record := DecisionRecord{
			Title:         d.Title,
			Description:   d.Description,
			DocumentsLink: d.DocumentsLink,
			Deadline:      utils.FormatDate(d.Deadline),
			Creator:       d.Creator,
			Votes:         make([]VoteRecord, 0, len(d.Votes)),
		}
		for _, v := range d.Votes {
			record.Votes = append(record.Votes, VoteRecord{
				Member:        v.Member,
				Choice:        string(v.Choice),
				Justification: v.Justification,
				Timestamp:     utils.FormatTimestamp(v.Timestamp),
			})
		}
		doc.Decisions = append(doc.Decisions, record)
	}
	return doc
}

// ToDecisions converts the persisted records back to domain decisions.
// A nil document yields an empty collection.
func (doc *StateDocument) ToDecisions() ([]Decision, error) {
	if doc == nil {
		return []Decision{}, nil
	}

	decisions := make([]Decision, 0, len(doc.Decisions))
	for i, record := range doc.Decisions {
		deadline, err := utils.ParseDate(record.Deadline)
		if err != nil {
			return nil, fmt.Errorf("decision %d (%q): %w", i+1, record.Title, err)
		}

		d := Decision{
			Title:         record.Title,
			Description:   record.Description,
			DocumentsLink: record.DocumentsLink,
			Deadline:      deadline,
			Creator:       record.Creator,
			Votes:         make([]Vote, 0, len(record.Votes)),
		}
		for j, vr := range record.Votes {
			ts, err := utils.ParseTimestamp(vr.Timestamp)
			if err != nil {
				return nil, fmt.Errorf("decision %d vote %d: %w", i+1, j+1, err)
			}
			choice := Choice(vr.Choice)
			if !choice.IsValid() {
				return nil, fmt.Errorf("decision %d vote %d: unknown choice %q", i+1, j+1, vr.Choice)
			}
			d.Votes = append(d.Votes, Vote{
				Member:        vr.Member,
				Choice:        choice,
				Justification: vr.Justification,
				Timestamp:     ts,
			})
		}
		decisions = append(decisions, d)
	}

	return decisions, nil
}
