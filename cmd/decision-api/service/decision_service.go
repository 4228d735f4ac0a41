// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the decision API endpoints and their wiring.
package service

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/infrastructure/csvexport"
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/constants"
	lfxerrors "github.com/linuxfoundation/lfx-v2-decision-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/log"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

// decisionService holds the command handlers of the decision API
type decisionService struct {
	store    service.DecisionStore
	sessions service.SessionManager
}

// newDecisionService returns the decision API handlers
func newDecisionService(store service.DecisionStore, sessions service.SessionManager) *decisionService {
	return &decisionService{
		store:    store,
		sessions: sessions,
	}
}

func abortWithError(c *gin.Context, err error) {
	status, body := wrapError(c.Request.Context(), err)
	c.AbortWithStatusJSON(status, body)
}

// Livez implements the livez endpoint for liveness probes.
func (s *decisionService) Livez(c *gin.Context) {
	slog.DebugContext(c.Request.Context(), "liveness check completed successfully")
	c.String(http.StatusOK, "OK")
}

// Readyz implements the readyz endpoint for readiness probes.
func (s *decisionService) Readyz(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.store.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "service not ready", "error", err)
		abortWithError(c, lfxerrors.NewServiceUnavailable("service not ready", err))
		return
	}
	c.String(http.StatusOK, "OK\n")
}

// Login opens a session for the member
func (s *decisionService) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, bindingError(err))
		return
	}

	session, err := s.sessions.Login(ctx, payload.Member, payload.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResult{Token: session.Token, Member: session.Member})
}

// Logout discards the caller's session
func (s *decisionService) Logout(c *gin.Context) {
	session := sessionFromContext(c.Request.Context())
	if session != nil {
		s.sessions.Logout(c.Request.Context(), session.Token)
	}
	c.Status(http.StatusNoContent)
}

// ListDecisions returns the list view of every decision
func (s *decisionService) ListDecisions(c *gin.Context) {
	summaries := s.store.ListDecisions(c.Request.Context())
	c.JSON(http.StatusOK, convertDomainToListResponse(summaries))
}

// CreateDecision proposes a new decision on behalf of the logged in member
func (s *decisionService) CreateDecision(c *gin.Context) {
	ctx := c.Request.Context()

	var payload createDecisionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, bindingError(err))
		return
	}

	slog.DebugContext(ctx, "decisionService.create-decision", "title", payload.Title)

	decision, position, err := s.store.CreateDecision(ctx, convertCreatePayloadToDomain(&payload, sessionFromContext(ctx)))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Location", "/decisions/"+strconv.Itoa(position))
	c.JSON(http.StatusCreated, convertDomainToDecisionResponse(position, decision, service.TallyVotes(decision)))
}

// GetDecision returns a decision with its tally
func (s *decisionService) GetDecision(c *gin.Context) {
	ctx := c.Request.Context()

	position, err := positionParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	decision, err := s.store.GetDecision(ctx, position)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertDomainToDecisionResponse(position, decision, service.TallyVotes(decision)))
}

// CastVote records the logged in member's vote and returns the updated
// decision with its tally
func (s *decisionService) CastVote(c *gin.Context) {
	ctx := c.Request.Context()

	position, err := positionParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var payload castVotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, bindingError(err))
		return
	}

	member := ""
	if session := sessionFromContext(ctx); session != nil {
		member = session.Member
	}

	decision, err := s.store.AppendVote(ctx, position, member, convertChoice(payload.Choice), payload.Justification)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, convertDomainToDecisionResponse(position, decision, service.TallyVotes(decision)))
}

// GetTally returns the vote counts and bar chart data of a decision
func (s *decisionService) GetTally(c *gin.Context) {
	position, err := positionParam(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	tally, err := s.store.Tally(c.Request.Context(), position)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, convertDomainToTallyResponse(tally))
}

// Export downloads the CSV export regenerated from the current state
func (s *decisionService) Export(c *gin.Context) {
	ctx := c.Request.Context()

	rows := s.store.Export(ctx)
	data, err := csvexport.Encode(rows)
	if err != nil {
		abortWithError(c, lfxerrors.NewUnexpected("failed to render export", err))
		return
	}

	slog.InfoContext(ctx, "export downloaded", "row_count", len(rows))
	c.Header("Content-Disposition", constants.ExportDisposition)
	c.Data(http.StatusOK, constants.ExportContentType, data)
}

// RequireSession resolves the bearer token to a session and stores it in
// the request context
func (s *decisionService) RequireSession(c *gin.Context) {
	ctx := c.Request.Context()

	header := c.GetHeader(constants.AuthorizationHeader)
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		abortWithError(c, lfxerrors.NewUnauthorized("missing bearer token"))
		return
	}

	session, err := s.sessions.Resolve(ctx, strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix)))
	if err != nil {
		abortWithError(c, err)
		return
	}

	ctx = context.WithValue(ctx, constants.SessionContextKey, session)
	ctx = log.AppendCtx(ctx, slog.String("member", session.Member))
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func sessionFromContext(ctx context.Context) *model.Session {
	session, _ := ctx.Value(constants.SessionContextKey).(*model.Session)
	return session
}

func positionParam(c *gin.Context) (int, error) {
	position, err := utils.ParsePosition(c.Param("position"))
	if err != nil {
		return 0, lfxerrors.NewValidation("position must be a number", err)
	}
	return position, nil
}
