// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The decision API serves group decisions and their votes over HTTP.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-decision-service/cmd/decision-api/service"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/middleware"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/log"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	log.InitStructureLogConfig()
}

func main() {
	if err := run(); err != nil {
		slog.Error("decision API stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.InfoContext(ctx, "starting decision API",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	otelConfig := utils.OTelConfigFromEnv()
	if otelConfig.ServiceVersion == "" {
		otelConfig.ServiceVersion = Version
	}
	otelShutdown, err := utils.SetupOTelSDKWithConfig(ctx, otelConfig)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if errShutdown := otelShutdown(shutdownCtx); errShutdown != nil {
			slog.ErrorContext(shutdownCtx, "failed to shut down OpenTelemetry", "error", errShutdown)
		}
	}()

	cfg, err := service.LoadConfig(os.Getenv(constants.EnvConfigFile))
	if err != nil {
		return err
	}

	store, err := service.DecisionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer service.CloseNATS(context.Background())

	if _, err := store.LoadAll(ctx); err != nil {
		return err
	}

	sessions, err := service.SessionManager(ctx, cfg)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := service.NewRouter(store, sessions, cfg.CORSAllowedOrigins)

	var handler http.Handler = router
	handler = middleware.BodyLimitMiddleware(middleware.DefaultMaxBodyBytes)(handler)
	handler = middleware.RequestIDMiddleware()(handler)
	handler = otelhttp.NewHandler(handler, constants.ServiceName,
		otelhttp.WithSpanNameFormatter(service.SpanName),
	)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "HTTP server listening",
			"addr", srv.Addr,
			"storage", cfg.Storage,
			"publisher", cfg.Publisher,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.InfoContext(gctx, "shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shut down HTTP server", "error", err)
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "decision API stopped")
	return nil
}
