// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func sampleDecisions() []Decision {
	return []Decision{
		{
			Title:         "Budget 2025",
			Description:   "Approve the yearly budget",
			DocumentsLink: "https://example.org/budget.pdf",
			Deadline:      time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Creator:       "ana",
			Votes: []Vote{
				{Member: "ana", Choice: ChoiceAgree, Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
				{Member: "bruno", Choice: ChoiceDisagree, Justification: "custo alto", Timestamp: time.Date(2024, 5, 1, 9, 5, 30, 0, time.UTC)},
			},
		},
		{
			Title:    "Office move",
			Deadline: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			Creator:  "carla",
			Votes:    []Vote{},
		},
	}
}

func TestStateDocument_RoundTrip(t *testing.T) {
	decisions := sampleDecisions()

	restored, err := NewStateDocument(decisions).ToDecisions()

	require.NoError(t, err)
	assert.Equal(t, decisions, restored)
}

func TestStateDocument_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(NewStateDocument(sampleDecisions()[:1]))
	require.NoError(t, err)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	require.Len(t, raw["decisions"], 1)
	record := raw["decisions"][0]
	assert.Equal(t, "Budget 2025", record["titulo"])
	assert.Equal(t, "Approve the yearly budget", record["descricao"])
	assert.Equal(t, "https://example.org/budget.pdf", record["documentos"])
	assert.Equal(t, "2024-12-31", record["data_limite"])
	assert.Equal(t, "ana", record["criador"])

	votes, ok := record["votos"].([]any)
	require.True(t, ok)
	require.Len(t, votes, 2)
	second := votes[1].(map[string]any)
	assert.Equal(t, "bruno", second["membro"])
	assert.Equal(t, "Não concordo", second["voto"])
	assert.Equal(t, "custo alto", second["justificativa"])
	assert.Equal(t, "2024-05-01 09:05:30", second["data_hora"])
}

func TestStateDocument_MsgpackRoundTrip(t *testing.T) {
	doc := NewStateDocument(sampleDecisions())

	data, err := msgpack.Marshal(doc)
	require.NoError(t, err)

	var decoded StateDocument
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, *doc, decoded)
}

func TestStateDocument_ToDecisionsNil(t *testing.T) {
	var doc *StateDocument

	decisions, err := doc.ToDecisions()

	require.NoError(t, err)
	assert.Empty(t, decisions)
	assert.NotNil(t, decisions)
}

func TestStateDocument_ToDecisionsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  StateDocument
	}{
		{
			name: "bad deadline",
			doc: StateDocument{Decisions: []DecisionRecord{
				{Title: "x", Deadline: "31/12/2024"},
			}},
		},
		{
			name: "bad timestamp",
			doc: StateDocument{Decisions: []DecisionRecord{
				{Title: "x", Deadline: "2024-12-31", Votes: []VoteRecord{
					{Member: "ana", Choice: "De acordo", Timestamp: "yesterday"},
				}},
			}},
		},
		{
			name: "unknown choice",
			doc: StateDocument{Decisions: []DecisionRecord{
				{Title: "x", Deadline: "2024-12-31", Votes: []VoteRecord{
					{Member: "ana", Choice: "Talvez", Timestamp: "2024-05-01 09:00:00"},
				}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.doc.ToDecisions()
			assert.Error(t, err)
		})
	}
}

func TestExportRow_Values(t *testing.T) {
	row := ExportRow{
		Title:         "t",
		Description:   "d",
		DocumentsLink: "l",
		Deadline:      "2024-12-31",
		Creator:       "c",
		Member:        "m",
		Choice:        "De acordo",
		Justification: "j",
		Timestamp:     "2024-05-01 09:00:00",
	}

	values := row.Values()

	require.Len(t, values, len(ExportHeader))
	assert.Equal(t, []string{"t", "d", "l", "2024-12-31", "c", "m", "De acordo", "j", "2024-05-01 09:00:00"}, values)
}
