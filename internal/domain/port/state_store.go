// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
)

// StateReader defines the interface for reading the persisted decision state
type StateReader interface {
	// ReadState returns the persisted document. The boolean is false when no
	// state has been written yet, which callers treat as an empty collection.
	ReadState(ctx context.Context) (*model.StateDocument, bool, error)
}

// StateWriter defines the interface for persisting the decision state
type StateWriter interface {
	// WriteState replaces the persisted document. A failed write must leave
	// the previous document readable.
	WriteState(ctx context.Context, doc *model.StateDocument) error

	// WriteExport replaces the tabular export with the given rows
	WriteExport(ctx context.Context, rows []model.ExportRow) error
}

// StateStore is the full persistence port used by the decision store
type StateStore interface {
	StateReader
	StateWriter

	// IsReady checks if the backing storage is reachable
	IsReady(ctx context.Context) error
}
