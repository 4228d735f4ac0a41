// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntry struct {
	bucket   string
	key      string
	value    []byte
	revision uint64
	created  time.Time
}

func (e *fakeEntry) Bucket() string                  { return e.bucket }
func (e *fakeEntry) Key() string                     { return e.key }
func (e *fakeEntry) Value() []byte                   { return e.value }
func (e *fakeEntry) Revision() uint64                { return e.revision }
func (e *fakeEntry) Created() time.Time              { return e.created }
func (e *fakeEntry) Delta() uint64                   { return 0 }
func (e *fakeEntry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

// fakeKV mimics the revision semantics of a JetStream KV bucket
type fakeKV struct {
	mu       sync.Mutex
	entries  map[string]*fakeEntry
	sequence uint64
	putErr   error
}

func newFakeKV() *fakeKV {
	return &fakeKV{entries: make(map[string]*fakeEntry)}
}

func (f *fakeKV) Get(_ context.Context, key string) (jetstream.KeyValueEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	return entry, nil
}

func (f *fakeKV) store(key string, value []byte) uint64 {
	f.sequence++
	f.entries[key] = &fakeEntry{
		bucket:   constants.KVBucketNameDecisions,
		key:      key,
		value:    append([]byte(nil), value...),
		revision: f.sequence,
		created:  time.Now(),
	}
	return f.sequence
}

func (f *fakeKV) Put(_ context.Context, key string, value []byte) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return 0, f.putErr
	}
	return f.store(key, value), nil
}

func (f *fakeKV) Create(_ context.Context, key string, value []byte, _ ...jetstream.KVCreateOpt) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return 0, f.putErr
	}
	if _, ok := f.entries[key]; ok {
		return 0, jetstream.ErrKeyExists
	}
	return f.store(key, value), nil
}

func (f *fakeKV) Update(_ context.Context, key string, value []byte, revision uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return 0, f.putErr
	}
	entry, ok := f.entries[key]
	if !ok || entry.revision != revision {
		return 0, jetstream.ErrKeyExists
	}
	return f.store(key, value), nil
}

func newTestStorage(kv *fakeKV) *storage {
	client := &NATSClient{kvStore: map[string]keyValue{}}
	if kv != nil {
		client.kvStore[constants.KVBucketNameDecisions] = kv
	}
	return &storage{client: client}
}

func sampleDocument() *model.StateDocument {
	return model.NewStateDocument([]model.Decision{
		{
			Title:    "Budget",
			Deadline: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			Creator:  "ana",
			Votes: []model.Vote{
				{Member: "ana", Choice: model.ChoiceAgree, Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
			},
		},
	})
}

func TestStorage_ReadStateAbsent(t *testing.T) {
	s := newTestStorage(newFakeKV())

	doc, found, err := s.ReadState(context.Background())

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, doc)
}

func TestStorage_WriteThenRead(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := newTestStorage(kv)

	require.NoError(t, s.WriteState(ctx, sampleDocument()))
	// a second write updates against the revision of the first
	require.NoError(t, s.WriteState(ctx, sampleDocument()))

	reader := newTestStorage(kv)
	doc, found, err := reader.ReadState(ctx)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, sampleDocument(), doc)
	assert.Equal(t, uint64(2), reader.revision)
}

func TestStorage_WriteStateConflict(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()

	first := newTestStorage(kv)
	second := newTestStorage(kv)

	_, _, err := first.ReadState(ctx)
	require.NoError(t, err)
	_, _, err = second.ReadState(ctx)
	require.NoError(t, err)

	require.NoError(t, first.WriteState(ctx, sampleDocument()))
	err = second.WriteState(ctx, sampleDocument())

	require.Error(t, err)
	var conflict errs.Conflict
	assert.True(t, errors.As(err, &conflict))
}

func TestStorage_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		run  func(s *storage) error
		kv   *fakeKV
	}{
		{
			name: "missing bucket on read",
			run: func(s *storage) error {
				_, _, err := s.ReadState(ctx)
				return err
			},
		},
		{
			name: "missing bucket on write",
			run:  func(s *storage) error { return s.WriteState(ctx, sampleDocument()) },
		},
		{
			name: "missing bucket on export",
			run:  func(s *storage) error { return s.WriteExport(ctx, nil) },
		},
		{
			name: "put failure on write",
			kv:   &fakeKV{entries: map[string]*fakeEntry{}, putErr: errors.New("nats: timeout")},
			run:  func(s *storage) error { return s.WriteState(ctx, sampleDocument()) },
		},
		{
			name: "put failure on export",
			kv:   &fakeKV{entries: map[string]*fakeEntry{}, putErr: errors.New("nats: timeout")},
			run:  func(s *storage) error { return s.WriteExport(ctx, nil) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run(newTestStorage(tt.kv))

			require.Error(t, err)
			var unavailable errs.ServiceUnavailable
			assert.True(t, errors.As(err, &unavailable), "got %T", err)
		})
	}
}

func TestStorage_ReadStateCorrupt(t *testing.T) {
	kv := newFakeKV()
	kv.store(constants.KVKeyState, []byte("not msgpack"))

	_, _, err := newTestStorage(kv).ReadState(context.Background())

	require.Error(t, err)
	var unexpected errs.Unexpected
	assert.True(t, errors.As(err, &unexpected))
}

func TestStorage_WriteExport(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := newTestStorage(kv)

	rows := []model.ExportRow{
		{Title: "Budget", Deadline: "2024-12-31", Creator: "ana", Member: "ana", Choice: "De acordo", Timestamp: "2024-05-01 09:00:00"},
	}

	require.NoError(t, s.WriteExport(ctx, rows))
	require.NoError(t, s.WriteExport(ctx, rows))

	entry, err := kv.Get(ctx, constants.KVKeyExport)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(entry.Value())), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(model.ExportHeader, ","), lines[0])
	assert.Equal(t, "Budget,,,2024-12-31,ana,ana,De acordo,,2024-05-01 09:00:00", lines[1])
}

func TestStorage_IsReadyWithoutConnection(t *testing.T) {
	err := newTestStorage(newFakeKV()).IsReady(context.Background())

	require.Error(t, err)
	var unavailable errs.ServiceUnavailable
	assert.True(t, errors.As(err, &unavailable))
}
