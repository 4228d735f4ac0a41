// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package file provides a state store backed by files in a data directory.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/csvexport"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
)

type storage struct {
	dir        string
	statePath  string
	exportPath string
}

// ReadState loads the JSON document. A missing file means no state yet.
func (s *storage) ReadState(ctx context.Context) (*model.StateDocument, bool, error) {
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "state file not found", "path", s.statePath)
			return nil, false, nil
		}
		slog.ErrorContext(ctx, "failed to read state file", "error", err, "path", s.statePath)
		return nil, false, errs.NewServiceUnavailable("failed to read state file", err)
	}

	doc := &model.StateDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		slog.ErrorContext(ctx, "failed to decode state file", "error", err, "path", s.statePath)
		return nil, false, errs.NewUnexpected("failed to decode state file", err)
	}

	slog.DebugContext(ctx, "file storage: decision state read",
		"path", s.statePath,
		"decisions", len(doc.Decisions))

	return doc, true, nil
}

// WriteState replaces the JSON document
func (s *storage) WriteState(ctx context.Context, doc *model.StateDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.NewUnexpected("failed to encode state", err)
	}

	if err := writeAtomic(s.statePath, data); err != nil {
		slog.ErrorContext(ctx, "failed to write state file", "error", err, "path", s.statePath)
		return errs.NewServiceUnavailable("failed to write state file", err)
	}

	slog.DebugContext(ctx, "file storage: decision state written",
		"path", s.statePath,
		"size", len(data))

	return nil
}

// WriteExport replaces the CSV export
func (s *storage) WriteExport(ctx context.Context, rows []model.ExportRow) error {
	var buf bytes.Buffer
	if err := csvexport.Write(&buf, rows); err != nil {
		return errs.NewUnexpected("failed to encode export", err)
	}

	if err := writeAtomic(s.exportPath, buf.Bytes()); err != nil {
		slog.ErrorContext(ctx, "failed to write export file", "error", err, "path", s.exportPath)
		return errs.NewServiceUnavailable("failed to write export file", err)
	}

	slog.DebugContext(ctx, "file storage: decision export written",
		"path", s.exportPath,
		"rows", len(rows))

	return nil
}

// IsReady checks that the data directory exists
func (s *storage) IsReady(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		slog.ErrorContext(ctx, "data directory is not available", "error", err, "dir", s.dir)
		return errs.NewServiceUnavailable("data directory is not available", err)
	}
	if !info.IsDir() {
		return errs.NewServiceUnavailable(fmt.Sprintf("%s is not a directory", s.dir))
	}
	return nil
}

// filePerm is the mode of the state file and the export
const filePerm os.FileMode = 0o644

// writeAtomic writes data to a temporary file next to path and renames it
// over path, so readers see either the old or the new content.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// CreateTemp opens with 0600
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// NewStorage creates a file-backed state store in dir, creating the
// directory when needed
func NewStorage(dir string) (port.StateStore, error) {
	if dir == "" {
		return nil, errs.NewValidation("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errs.NewServiceUnavailable("failed to create data directory", err)
	}
	return &storage{
		dir:        dir,
		statePath:  filepath.Join(dir, constants.StateFileName),
		exportPath: filepath.Join(dir, constants.ExportFileName),
	}, nil
}
