// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/csvexport"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/vmihailenco/msgpack/v5"
)

// storage keeps the decision document in the decisions KV bucket.
// The revision of the last read or write guards against a second writer.
type storage struct {
	client *NATSClient

	mu       sync.Mutex
	revision uint64
}

// ReadState retrieves the decision document and remembers its revision
func (s *storage) ReadState(ctx context.Context) (*model.StateDocument, bool, error) {
	slog.DebugContext(ctx, "nats storage: reading decision state")

	doc := &model.StateDocument{}
	rev, err := s.get(ctx, constants.KVBucketNameDecisions, constants.KVKeyState, doc)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			slog.DebugContext(ctx, "decision state not found", "bucket", constants.KVBucketNameDecisions)
			s.setRevision(0)
			return nil, false, nil
		}
		if isTyped(err) {
			return nil, false, err
		}
		slog.ErrorContext(ctx, "failed to read decision state", "error", err)
		return nil, false, errs.NewServiceUnavailable("failed to read decision state", err)
	}

	s.setRevision(rev)

	slog.DebugContext(ctx, "nats storage: decision state read",
		"decisions", len(doc.Decisions),
		"revision", rev)

	return doc, true, nil
}

// WriteState stores the document, creating the key on first write and
// updating it against the known revision afterwards
func (s *storage) WriteState(ctx context.Context, doc *model.StateDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.DebugContext(ctx, "nats storage: writing decision state",
		"expected_revision", s.revision)

	rev, err := s.putWithRevision(ctx, constants.KVBucketNameDecisions, constants.KVKeyState, doc, s.revision)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			slog.WarnContext(ctx, "decision state was modified by another writer",
				"error", err,
				"expected_revision", s.revision)
			return errs.NewConflict("decision state was modified by another writer", err)
		}
		if isTyped(err) {
			return err
		}
		slog.ErrorContext(ctx, "failed to write decision state", "error", err)
		return errs.NewServiceUnavailable("failed to write decision state", err)
	}
	s.revision = rev

	slog.DebugContext(ctx, "nats storage: decision state written", "revision", rev)

	return nil
}

// WriteExport stores the CSV rendering of the rows under the export key
func (s *storage) WriteExport(ctx context.Context, rows []model.ExportRow) error {
	data, err := csvexport.Encode(rows)
	if err != nil {
		return errs.NewUnexpected("failed to encode export", err)
	}

	kv, err := s.bucket(constants.KVBucketNameDecisions)
	if err != nil {
		return err
	}

	rev, err := kv.Put(ctx, constants.KVKeyExport, data)
	if err != nil {
		slog.ErrorContext(ctx, "failed to write decision export", "error", err)
		return errs.NewServiceUnavailable("failed to write decision export", err)
	}

	slog.DebugContext(ctx, "nats storage: decision export written",
		"rows", len(rows),
		"size", len(data),
		"revision", rev)

	return nil
}

// IsReady checks if the NATS connection is usable
func (s *storage) IsReady(ctx context.Context) error {
	return s.client.IsReady(ctx)
}

// isTyped reports whether err already carries a service error type
func isTyped(err error) bool {
	var (
		unavailable errs.ServiceUnavailable
		unexpected  errs.Unexpected
		validation  errs.Validation
	)
	return errors.As(err, &unavailable) || errors.As(err, &unexpected) || errors.As(err, &validation)
}

func (s *storage) setRevision(rev uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision = rev
}

func (s *storage) bucket(name string) (keyValue, error) {
	kv, exists := s.client.kvStore[name]
	if !exists || kv == nil {
		return nil, errs.NewServiceUnavailable("KV bucket not available")
	}
	return kv, nil
}

// get retrieves a msgpack encoded value from the bucket and decodes it into
// target, returning the entry revision.
func (s *storage) get(ctx context.Context, bucket, key string, target any) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, err := s.bucket(bucket)
	if err != nil {
		return 0, err
	}

	entry, errGet := kv.Get(ctx, key)
	if errGet != nil {
		return 0, errGet
	}

	if errUnmarshal := msgpack.Unmarshal(entry.Value(), target); errUnmarshal != nil {
		return 0, errs.NewUnexpected("failed to decode stored value", errUnmarshal)
	}

	return entry.Revision(), nil
}

// putWithRevision stores a msgpack encoded value. A zero expected revision
// creates the key, any other value performs a conditional update.
func (s *storage) putWithRevision(ctx context.Context, bucket, key string, value any, expectedRevision uint64) (uint64, error) {
	if key == "" {
		return 0, errs.NewValidation("key cannot be empty")
	}

	kv, err := s.bucket(bucket)
	if err != nil {
		return 0, err
	}

	data, err := msgpack.Marshal(value)
	if err != nil {
		return 0, errs.NewUnexpected("failed to encode value", err)
	}

	if expectedRevision == 0 {
		return kv.Create(ctx, key, data)
	}
	return kv.Update(ctx, key, data, expectedRevision)
}

// NewStorage creates a new NATS-backed state store
func NewStorage(client *NATSClient) port.StateStore {
	return &storage{
		client: client,
	}
}
