// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
)

// MockStateStore provides an in-memory implementation of the StateStore
// interface with error simulation for testing
type MockStateStore struct {
	doc        *model.StateDocument
	exportRows []model.ExportRow

	stateWrites  int
	exportWrites int

	readErr        error
	writeStateErr  error
	writeExportErr error
	readyErr       error

	mu sync.RWMutex // Protect concurrent access
}

// Ensure MockStateStore implements the StateStore interface
var _ port.StateStore = (*MockStateStore)(nil)

// NewMockStateStore creates a new empty mock state store
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{}
}

// ReadState returns a copy of the stored document
func (m *MockStateStore) ReadState(ctx context.Context) (*model.StateDocument, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.readErr != nil {
		return nil, false, m.readErr
	}
	if m.doc == nil {
		slog.DebugContext(ctx, "mock state store is empty")
		return nil, false, nil
	}
	return copyDocument(m.doc), true, nil
}

// WriteState stores a copy of the document
func (m *MockStateStore) WriteState(ctx context.Context, doc *model.StateDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeStateErr != nil {
		return m.writeStateErr
	}
	m.doc = copyDocument(doc)
	m.stateWrites++

	slog.DebugContext(ctx, "mock state written", "decision_count", len(doc.Decisions))
	return nil
}

// WriteExport stores a copy of the export rows
func (m *MockStateStore) WriteExport(ctx context.Context, rows []model.ExportRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeExportErr != nil {
		return m.writeExportErr
	}
	m.exportRows = make([]model.ExportRow, len(rows))
	copy(m.exportRows, rows)
	m.exportWrites++

	slog.DebugContext(ctx, "mock export written", "row_count", len(rows))
	return nil
}

// IsReady returns the configured readiness error, if any
func (m *MockStateStore) IsReady(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readyErr
}

// Seed replaces the stored document, as if written by an earlier run
func (m *MockStateStore) Seed(doc *model.StateDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = copyDocument(doc)
}

// Document returns a copy of the stored document, or nil if none was written
func (m *MockStateStore) Document() *model.StateDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return nil
	}
	return copyDocument(m.doc)
}

// ExportRows returns a copy of the last written export
func (m *MockStateStore) ExportRows() []model.ExportRow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.ExportRow, len(m.exportRows))
	copy(out, m.exportRows)
	return out
}

// WriteCounts returns how many state and export writes succeeded
func (m *MockStateStore) WriteCounts() (state, export int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateWrites, m.exportWrites
}

// SetReadError configures an error for ReadState
func (m *MockStateStore) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetWriteStateError configures an error for WriteState
func (m *MockStateStore) SetWriteStateError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeStateErr = err
}

// SetWriteExportError configures an error for WriteExport
func (m *MockStateStore) SetWriteExportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeExportErr = err
}

// SetReadyError configures an error for IsReady
func (m *MockStateStore) SetReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readyErr = err
}

// ClearErrors removes every configured error
func (m *MockStateStore) ClearErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = nil
	m.writeStateErr = nil
	m.writeExportErr = nil
	m.readyErr = nil
}

func copyDocument(doc *model.StateDocument) *model.StateDocument {
	out := &model.StateDocument{Decisions: make([]model.DecisionRecord, len(doc.Decisions))}
	for i, record := range doc.Decisions {
		out.Decisions[i] = record
		out.Decisions[i].Votes = make([]model.VoteRecord, len(record.Votes))
		copy(out.Decisions[i].Votes, record.Votes)
	}
	return out
}
