// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

// BuildExportRows flattens decisions into one row per vote, repeating the
// decision metadata on each. A decision without votes still gets one row,
// with empty vote columns, so it shows up in the export.
func BuildExportRows(decisions []model.Decision) []model.ExportRow {
	rows := make([]model.ExportRow, 0, len(decisions))
	for _, d := range decisions {
		base := model.ExportRow{
			Title:         d.Title,
			Description:   d.Description,
			DocumentsLink: d.DocumentsLink,
			Deadline:      utils.FormatDate(d.Deadline),
			Creator:       d.Creator,
		}

		if len(d.Votes) == 0 {
			rows = append(rows, base)
			continue
		}

		for _, v := range d.Votes {
			row := base
			row.Member = v.Member
			row.Choice = string(v.Choice)
			row.Justification = v.Justification
			row.Timestamp = utils.FormatTimestamp(v.Timestamp)
			rows = append(rows, row)
		}
	}
	return rows
}
