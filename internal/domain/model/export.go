// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

// ExportHeader lists the tabular export columns in order.
var ExportHeader = []string{
	"titulo",
	"descricao",
	"documentos",
	"data_limite",
	"criador",
	"membro",
	"voto",
	"justificativa",
	"data_hora",
}

// ExportRow is one line of the tabular export: a decision's metadata
// paired with one of its votes. Vote fields are empty for a decision that
// has no votes yet.
type ExportRow struct {
	Title         string `json:"titulo"`
	Description   string `json:"descricao"`
	DocumentsLink string `json:"documentos"`
	Deadline      string `json:"data_limite"`
	Creator       string `json:"criador"`
	Member        string `json:"membro"`
	Choice        string `json:"voto"`
	Justification string `json:"justificativa"`
	Timestamp     string `json:"data_hora"`
}

// Values returns the row's cells in ExportHeader order.
func (r ExportRow) Values() []string {
	return []string{
		r.Title,
		r.Description,
		r.DocumentsLink,
		r.Deadline,
		r.Creator,
		r.Member,
		r.Choice,
		r.Justification,
		r.Timestamp,
	}
}
