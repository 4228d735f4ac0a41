// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
)

func corsOption(allowedOrigins []string) cors.Config {
	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet, http.MethodPost,
		},
		AllowHeaders:     []string{constants.AuthorizationHeader, "Content-Type", constants.RequestIDHeader, "traceparent", "baggage"},
		ExposeHeaders:    []string{constants.RequestIDHeader, "Content-Disposition", "Location"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// requestLogger logs one record per request, at a level matching the status
func requestLogger(ignorePaths ...string) gin.HandlerFunc {
	ignore := make(map[string]struct{}, len(ignorePaths))
	for _, path := range ignorePaths {
		ignore[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := ignore[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"data_length", max(c.Writer.Size(), 0),
		)
	}
}

// SpanName names server spans before routing. routeSpanName replaces it
// with the matched route once gin has resolved one.
func SpanName(_ string, r *http.Request) string {
	return r.Method + " unmatched"
}

// routeSpanName names the request span after the route template, so every
// decision position shares one span name.
func routeSpanName() gin.HandlerFunc {
	return func(c *gin.Context) {
		if route := c.FullPath(); route != "" {
			trace.SpanFromContext(c.Request.Context()).SetName(c.Request.Method + " " + route)
		}
		c.Next()
	}
}

// NewRouter builds the decision API routes
func NewRouter(store service.DecisionStore, sessions service.SessionManager, allowedOrigins []string) *gin.Engine {
	registerValidators()

	r := gin.New()
	r.Use(gin.Recovery(), routeSpanName())
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(corsOption(allowedOrigins)))
	}
	r.Use(requestLogger("/livez", "/readyz"))

	s := newDecisionService(store, sessions)

	r.GET("/livez", s.Livez)
	r.GET("/readyz", s.Readyz)
	r.POST("/login", s.Login)

	authed := r.Group("/", s.RequireSession)
	authed.POST("/logout", s.Logout)
	authed.GET("/decisions", s.ListDecisions)
	authed.POST("/decisions", s.CreateDecision)
	authed.GET("/decisions/:position", s.GetDecision)
	authed.POST("/decisions/:position/votes", s.CastVote)
	authed.GET("/decisions/:position/tally", s.GetTally)
	authed.GET("/export", s.Export)

	return r
}
