// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package csvexport renders the decision export as CSV.
package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
)

// Write renders the header and rows to w
func Write(w io.Writer, rows []model.ExportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(model.ExportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return fmt.Errorf("failed to write export row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Encode renders the header and rows to a byte slice
func Encode(rows []model.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
