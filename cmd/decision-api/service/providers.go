// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/auth"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/file"
	infrastructure "github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/nats"
	internalService "github.com/linuxfoundation/lfx-v2-decision-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
)

var (
	natsClient    *nats.NATSClient
	natsClientErr error

	natsDoOnce sync.Once
)

func natsInit(ctx context.Context, cfg Config) (*nats.NATSClient, error) {
	natsDoOnce.Do(func() {
		natsClient, natsClientErr = nats.NewClient(ctx, cfg.NATS)
	})
	return natsClient, natsClientErr
}

// CloseNATS drains the shared NATS connection when one was opened
func CloseNATS(ctx context.Context) {
	if natsClient == nil {
		return
	}
	if err := natsClient.Close(); err != nil {
		slog.ErrorContext(ctx, "failed to close NATS connection", "error", err)
		return
	}
	slog.InfoContext(ctx, "NATS connection closed")
}

// StateStore initializes the persistence backend selected by the configuration
func StateStore(ctx context.Context, cfg Config) (port.StateStore, error) {
	slog.InfoContext(ctx, "initializing decision state store",
		"backend", cfg.Storage,
		"description", constants.BackendDescription(cfg.Storage),
	)

	switch cfg.Storage {
	case constants.BackendFile:
		return file.NewStorage(cfg.DataDir)
	case constants.BackendNATS:
		client, err := natsInit(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS client: %w", err)
		}
		return nats.NewStorage(client), nil
	case constants.BackendMock:
		return infrastructure.NewMockStateStore(), nil
	default:
		return nil, constants.ValidateBackend(cfg.Storage)
	}
}

// MessagePublisher initializes the event publisher. It returns nil when
// publishing is disabled.
func MessagePublisher(ctx context.Context, cfg Config) (port.MessagePublisher, error) {
	switch cfg.Publisher {
	case constants.PublisherNATS:
		slog.InfoContext(ctx, "initializing NATS message publisher")
		client, err := natsInit(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create NATS client: %w", err)
		}
		return nats.NewMessagePublisher(client), nil
	case constants.PublisherMock:
		slog.InfoContext(ctx, "initializing mock message publisher")
		return infrastructure.NewMockMessagePublisher(), nil
	case constants.PublisherNone:
		slog.InfoContext(ctx, "event publishing disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported publisher implementation: %s", cfg.Publisher)
	}
}

// Authenticator initializes the login verification strategy
func Authenticator(ctx context.Context, cfg Config) (port.Authenticator, error) {
	switch cfg.AuthSource {
	case constants.AuthSourceSharedPassword:
		slog.WarnContext(ctx, "using shared-password login: any member can sign in under any name, suitable for a small trusted group only",
			"strategy", auth.StrategySharedPassword,
		)
		return auth.NewSharedPasswordAuthenticator(cfg.SharedPassword)
	case constants.AuthSourceMock:
		slog.WarnContext(ctx, "using mock authentication: every login is accepted")
		return infrastructure.NewMockAuthenticator(), nil
	default:
		return nil, fmt.Errorf("unsupported authentication implementation: %s", cfg.AuthSource)
	}
}

// DecisionStore builds the decision store orchestrator over the configured backends
func DecisionStore(ctx context.Context, cfg Config) (internalService.DecisionStore, error) {
	stateStore, err := StateStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// a nil publisher disables event publishing
	publisher, err := MessagePublisher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return internalService.NewDecisionStoreOrchestrator(
		internalService.WithStateStore(stateStore),
		internalService.WithPublisher(publisher),
	), nil
}

// SessionManager builds the session manager over the configured login strategy
func SessionManager(ctx context.Context, cfg Config) (internalService.SessionManager, error) {
	authenticator, err := Authenticator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return internalService.NewSessionManager(internalService.WithAuthenticator(authenticator)), nil
}
