// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/log"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

const instrumentationName = "github.com/linuxfoundation/lfx-v2-decision-service/internal/service"

// DecisionStore owns the decision collection. Positions are 1-based and
// every successful mutation is persisted before it becomes visible.
type DecisionStore interface {
	// LoadAll replaces the in-memory collection with the persisted one.
	// Missing state is an empty collection, not an error.
	LoadAll(ctx context.Context) ([]model.Decision, error)

	// CreateDecision appends a new decision with no votes and returns it
	// together with its position
	CreateDecision(ctx context.Context, input model.CreateDecisionInput) (model.Decision, int, error)

	// GetDecision returns a copy of the decision at position
	GetDecision(ctx context.Context, position int) (model.Decision, error)

	// ListDecisions returns the list view of every decision in order
	ListDecisions(ctx context.Context) []model.DecisionSummary

	// AppendVote records a vote on the decision at position and returns the
	// updated decision
	AppendVote(ctx context.Context, position int, member string, choice model.Choice, justification string) (model.Decision, error)

	// Tally counts the votes of the decision at position
	Tally(ctx context.Context, position int) (model.Tally, error)

	// Persist writes the full collection and regenerates the export
	Persist(ctx context.Context) error

	// Export returns the tabular export of the current collection
	Export(ctx context.Context) []model.ExportRow

	// IsReady checks if the backing storage is reachable
	IsReady(ctx context.Context) error
}

// decisionStoreOrchestratorOption defines a function type for setting options on the decision store
type decisionStoreOrchestratorOption func(*decisionStoreOrchestrator)

// WithStateStore sets the persistence backend
func WithStateStore(store port.StateStore) decisionStoreOrchestratorOption {
	return func(o *decisionStoreOrchestrator) {
		o.stateStore = store
	}
}

// WithPublisher sets the event publisher (optional)
func WithPublisher(publisher port.MessagePublisher) decisionStoreOrchestratorOption {
	return func(o *decisionStoreOrchestrator) {
		o.publisher = publisher
	}
}

// WithClock overrides the clock used to stamp votes
func WithClock(now func() time.Time) decisionStoreOrchestratorOption {
	return func(o *decisionStoreOrchestrator) {
		o.now = now
	}
}

// WithPublishRetry overrides the retry policy for event publishing. Without a
// Retryable predicate only transient publish failures are retried.
func WithPublishRetry(config utils.RetryConfig) decisionStoreOrchestratorOption {
	return func(o *decisionStoreOrchestrator) {
		o.publishRetry = config
	}
}

// decisionStoreOrchestrator serializes access to the decision collection.
// Mutations build the next collection as a copy, persist it, and only then
// swap it in, so a failed write leaves memory and storage unchanged.
type decisionStoreOrchestrator struct {
	mu        sync.RWMutex
	decisions []model.Decision

	stateStore   port.StateStore
	publisher    port.MessagePublisher
	now          func() time.Time
	publishRetry utils.RetryConfig

	tracer           trace.Tracer
	decisionsCreated metric.Int64Counter
	votesCast        metric.Int64Counter
	votesRejected    metric.Int64Counter
}

// NewDecisionStoreOrchestrator creates a new decision store using the option pattern
func NewDecisionStoreOrchestrator(opts ...decisionStoreOrchestratorOption) DecisionStore {
	o := &decisionStoreOrchestrator{
		decisions: []model.Decision{},
		now:       time.Now,
		publishRetry: utils.NewRetryConfig(
			constants.PublishMaxRetries,
			constants.PublishRetryBaseDelay*time.Millisecond,
			constants.PublishRetryMaxDelay*time.Millisecond,
		),
		tracer: otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.publishRetry.Retryable == nil {
		o.publishRetry = o.publishRetry.WithRetryable(errors.IsRetryable)
	}

	meter := otel.Meter(instrumentationName)
	o.decisionsCreated = newCounter(meter, "decision.created", "Number of decisions created")
	o.votesCast = newCounter(meter, "decision.votes.cast", "Number of votes accepted")
	o.votesRejected = newCounter(meter, "decision.votes.rejected", "Number of votes rejected by validation")

	return o
}

func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		slog.Warn("failed to create counter, falling back to no-op", "name", name, "error", err)
		return noop.Int64Counter{}
	}
	return counter
}

// LoadAll replaces the in-memory collection with the persisted one
func (o *decisionStoreOrchestrator) LoadAll(ctx context.Context) ([]model.Decision, error) {
	ctx, span := o.tracer.Start(ctx, "DecisionStore.LoadAll")
	defer span.End()

	slog.DebugContext(ctx, "loading decision state")

	doc, found, err := o.stateStore.ReadState(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read decision state", "error", err)
		recordSpanError(span, err)
		return nil, err
	}

	decisions := []model.Decision{}
	if found {
		decisions, err = doc.ToDecisions()
		if err != nil {
			slog.ErrorContext(ctx, "stored decision state is malformed", "error", err, log.PriorityCritical())
			wrapped := errors.NewUnexpected("stored decision state is malformed", err)
			recordSpanError(span, wrapped)
			return nil, wrapped
		}
	}

	o.mu.Lock()
	o.decisions = decisions
	o.mu.Unlock()

	slog.InfoContext(ctx, "decision state loaded",
		"found", found,
		"decision_count", len(decisions),
	)
	span.SetAttributes(attribute.Int("decision.count", len(decisions)))

	return cloneDecisions(decisions), nil
}

// CreateDecision appends a new decision and persists the collection
func (o *decisionStoreOrchestrator) CreateDecision(ctx context.Context, input model.CreateDecisionInput) (model.Decision, int, error) {
	ctx, span := o.tracer.Start(ctx, "DecisionStore.CreateDecision")
	defer span.End()

	slog.DebugContext(ctx, "executing create decision use case",
		"title", input.Title,
		"creator", input.Creator,
		"deadline", input.Deadline,
	)

	decision, err := newDecision(input)
	if err != nil {
		slog.WarnContext(ctx, "decision rejected", "error", err)
		recordSpanError(span, err)
		return model.Decision{}, 0, err
	}

	o.mu.Lock()
	next := append(cloneDecisions(o.decisions), decision)
	if err := o.commit(ctx, next); err != nil {
		o.mu.Unlock()
		recordSpanError(span, err)
		return model.Decision{}, 0, err
	}
	position := len(next)
	o.mu.Unlock()

	o.decisionsCreated.Add(ctx, 1)
	span.SetAttributes(attribute.Int("decision.position", position))
	slog.InfoContext(ctx, "decision created",
		"position", position,
		"title", decision.Title,
	)

	created := decision.Clone()
	o.publishEvent(ctx, constants.DecisionCreatedSubject, model.ActionCreated, model.DecisionCreatedEvent{
		Position: position,
		Decision: &created,
	})

	return decision.Clone(), position, nil
}

// GetDecision returns a copy of the decision at position
func (o *decisionStoreOrchestrator) GetDecision(ctx context.Context, position int) (model.Decision, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	index, err := o.indexOf(position)
	if err != nil {
		slog.DebugContext(ctx, "decision lookup failed", "position", position, "error", err)
		return model.Decision{}, err
	}
	return o.decisions[index].Clone(), nil
}

// ListDecisions returns the list view of every decision in order
func (o *decisionStoreOrchestrator) ListDecisions(ctx context.Context) []model.DecisionSummary {
	o.mu.RLock()
	defer o.mu.RUnlock()

	summaries := make([]model.DecisionSummary, 0, len(o.decisions))
	for i, d := range o.decisions {
		summaries = append(summaries, d.Summary(i+1))
	}

	slog.DebugContext(ctx, "listed decisions", "decision_count", len(summaries))
	return summaries
}

// AppendVote records a vote on the decision at position
func (o *decisionStoreOrchestrator) AppendVote(ctx context.Context, position int, member string, choice model.Choice, justification string) (model.Decision, error) {
	ctx, span := o.tracer.Start(ctx, "DecisionStore.AppendVote", trace.WithAttributes(
		attribute.Int("decision.position", position),
		attribute.String("vote.choice", string(choice)),
	))
	defer span.End()

	slog.DebugContext(ctx, "executing append vote use case",
		"position", position,
		"member", member,
		"choice", choice,
	)

	o.mu.Lock()
	index, err := o.indexOf(position)
	if err != nil {
		o.mu.Unlock()
		recordSpanError(span, err)
		return model.Decision{}, err
	}

	updated, err := CastVote(o.decisions[index], member, choice, justification, o.now())
	if err != nil {
		o.mu.Unlock()
		o.votesRejected.Add(ctx, 1)
		slog.WarnContext(ctx, "vote rejected",
			"position", position,
			"member", member,
			"error", err,
		)
		recordSpanError(span, err)
		return model.Decision{}, err
	}

	next := cloneDecisions(o.decisions)
	next[index] = updated
	if err := o.commit(ctx, next); err != nil {
		o.mu.Unlock()
		recordSpanError(span, err)
		return model.Decision{}, err
	}
	o.mu.Unlock()

	o.votesCast.Add(ctx, 1, metric.WithAttributes(attribute.String("choice", string(choice))))
	vote := updated.Votes[len(updated.Votes)-1]
	slog.InfoContext(ctx, "vote recorded",
		"position", position,
		"member", vote.Member,
		"choice", vote.Choice,
		"vote_count", len(updated.Votes),
	)

	o.publishEvent(ctx, constants.VoteCastSubject, model.ActionVoted, model.VoteCastEvent{
		Position: position,
		Title:    updated.Title,
		Vote:     vote,
		Tally:    TallyVotes(updated),
	})

	return updated.Clone(), nil
}

// Tally counts the votes of the decision at position
func (o *decisionStoreOrchestrator) Tally(ctx context.Context, position int) (model.Tally, error) {
	decision, err := o.GetDecision(ctx, position)
	if err != nil {
		return nil, err
	}
	return TallyVotes(decision), nil
}

// Persist writes the full collection and regenerates the export
func (o *decisionStoreOrchestrator) Persist(ctx context.Context) error {
	ctx, span := o.tracer.Start(ctx, "DecisionStore.Persist")
	defer span.End()

	o.mu.RLock()
	defer o.mu.RUnlock()

	if err := o.writeState(ctx, o.decisions); err != nil {
		recordSpanError(span, err)
		return err
	}
	if err := o.writeExport(ctx, o.decisions); err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}

// Export returns the tabular export of the current collection
func (o *decisionStoreOrchestrator) Export(ctx context.Context) []model.ExportRow {
	o.mu.RLock()
	defer o.mu.RUnlock()

	rows := BuildExportRows(o.decisions)
	slog.DebugContext(ctx, "export generated", "row_count", len(rows))
	return rows
}

// IsReady checks if the backing storage is reachable
func (o *decisionStoreOrchestrator) IsReady(ctx context.Context) error {
	return o.stateStore.IsReady(ctx)
}

// commit persists next and swaps it in. Callers hold the write lock.
// The export is derived from durable state, so an export failure after a
// successful state write is logged without undoing the mutation.
func (o *decisionStoreOrchestrator) commit(ctx context.Context, next []model.Decision) error {
	if err := o.writeState(ctx, next); err != nil {
		return err
	}
	o.decisions = next

	if err := o.writeExport(ctx, next); err != nil {
		slog.ErrorContext(ctx, "decision state saved but export regeneration failed",
			"error", err,
			log.PriorityCritical(),
		)
	}
	return nil
}

func (o *decisionStoreOrchestrator) writeState(ctx context.Context, decisions []model.Decision) error {
	if err := o.stateStore.WriteState(ctx, model.NewStateDocument(decisions)); err != nil {
		slog.ErrorContext(ctx, "failed to persist decision state",
			"error", err,
			"decision_count", len(decisions),
		)
		return err
	}
	return nil
}

func (o *decisionStoreOrchestrator) writeExport(ctx context.Context, decisions []model.Decision) error {
	rows := BuildExportRows(decisions)
	if err := o.stateStore.WriteExport(ctx, rows); err != nil {
		slog.ErrorContext(ctx, "failed to write export", "error", err, "row_count", len(rows))
		return err
	}
	return nil
}

// indexOf maps a 1-based position to a slice index. Callers hold a lock.
func (o *decisionStoreOrchestrator) indexOf(position int) (int, error) {
	if position < 1 || position > len(o.decisions) {
		return 0, errors.NewNotFound(fmt.Sprintf("decision %d not found", position))
	}
	return position - 1, nil
}

func (o *decisionStoreOrchestrator) publishEvent(ctx context.Context, subject string, action model.MessageAction, payload any) {
	if o.publisher == nil {
		slog.DebugContext(ctx, "publisher not available, skipping event publishing", "subject", subject)
		return
	}

	message, err := (&model.EventMessage{Action: action}).Build(ctx, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build event message", "error", err, "subject", subject)
		return
	}

	err = utils.RetryWithExponentialBackoff(ctx, o.publishRetry, func() error {
		return o.publisher.Event(ctx, subject, message)
	})
	if err != nil {
		// the mutation is already durable, only the notification is lost
		slog.ErrorContext(ctx, "failed to publish event",
			"error", err,
			"subject", subject,
		)
	}
}

func newDecision(input model.CreateDecisionInput) (model.Decision, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Decision{}, errors.NewValidation(constants.ErrTitleRequired)
	}
	deadline, err := utils.ParseDate(input.Deadline)
	if err != nil {
		return model.Decision{}, errors.NewValidation("invalid deadline", err)
	}

	return model.Decision{
		Title:         title,
		Description:   input.Description,
		DocumentsLink: strings.TrimSpace(input.DocumentsLink),
		Deadline:      deadline,
		Creator:       input.Creator,
		Votes:         []model.Vote{},
	}, nil
}

func cloneDecisions(decisions []model.Decision) []model.Decision {
	out := make([]model.Decision, len(decisions))
	for i, d := range decisions {
		out[i] = d.Clone()
	}
	return out
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
