// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"github.com/linuxfoundation/lfx-v2-decision-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-decision-service/pkg/utils"
)

type loginResult struct {
	Token  string `json:"token"`
	Member string `json:"member"`
}

type voteResult struct {
	Member        string `json:"member"`
	Choice        string `json:"choice"`
	Justification string `json:"justification"`
	Timestamp     string `json:"timestamp"`
}

type barResult struct {
	Choice string  `json:"choice"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

type tallyResult struct {
	Total  int            `json:"total"`
	Counts map[string]int `json:"counts"`
	Bars   []barResult    `json:"bars"`
}

type decisionResult struct {
	Position      int          `json:"position"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DocumentsLink string       `json:"documents_link"`
	Deadline      string       `json:"deadline"`
	Creator       string       `json:"creator"`
	Votes         []voteResult `json:"votes"`
	Tally         tallyResult  `json:"tally"`
}

type decisionSummaryResult struct {
	Position  int    `json:"position"`
	Title     string `json:"title"`
	Creator   string `json:"creator"`
	Deadline  string `json:"deadline"`
	VoteCount int    `json:"vote_count"`
}

type decisionListResult struct {
	Decisions []decisionSummaryResult `json:"decisions"`
}

func convertDomainToDecisionResponse(position int, decision model.Decision, tally model.Tally) decisionResult {
	votes := make([]voteResult, 0, len(decision.Votes))
	for _, v := range decision.Votes {
		votes = append(votes, voteResult{
			Member:        v.Member,
			Choice:        string(v.Choice),
			Justification: v.Justification,
			Timestamp:     utils.FormatTimestamp(v.Timestamp),
		})
	}

	return decisionResult{
		Position:      position,
		Title:         decision.Title,
		Description:   decision.Description,
		DocumentsLink: decision.DocumentsLink,
		Deadline:      utils.FormatDate(decision.Deadline),
		Creator:       decision.Creator,
		Votes:         votes,
		Tally:         convertDomainToTallyResponse(tally),
	}
}

func convertDomainToTallyResponse(tally model.Tally) tallyResult {
	counts := make(map[string]int, len(tally))
	for _, c := range model.Choices() {
		counts[string(c)] = tally[c]
	}

	bars := make([]barResult, 0, len(model.Choices()))
	for _, b := range tally.Bars() {
		bars = append(bars, barResult{
			Choice: string(b.Choice),
			Count:  b.Count,
			Share:  b.Share,
		})
	}

	return tallyResult{
		Total:  tally.Total(),
		Counts: counts,
		Bars:   bars,
	}
}

func convertDomainToListResponse(summaries []model.DecisionSummary) decisionListResult {
	out := make([]decisionSummaryResult, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, decisionSummaryResult{
			Position:  s.Position,
			Title:     s.Title,
			Creator:   s.Creator,
			Deadline:  utils.FormatDate(s.Deadline),
			VoteCount: s.VoteCount,
		})
	}
	return decisionListResult{Decisions: out}
}
