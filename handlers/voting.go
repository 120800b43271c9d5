// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type VotingHandler struct {
	svc *competition.Service
}

func NewVotingHandler(svc *competition.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Vote handles POST /competitions/{id}/votes
// The caller votes as itself; each address votes once per competition
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Artist == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "artist is required")
		return
	}

	rec, err := h.svc.Vote(r.Context(), r.PathValue("id"), caller, req.Artist)
	if err != nil {
		writeServiceError(w, err, "cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, rec)
}

// VoteHistory handles GET /competitions/{id}/votes
func (h *VotingHandler) VoteHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.VoteHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "list votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

// HasVoted handles GET /competitions/{id}/voters/{address}
func (h *VotingHandler) HasVoted(w http.ResponseWriter, r *http.Request) {
	artist, voted, err := h.svc.HasVoted(r.Context(), r.PathValue("id"), r.PathValue("address"))
	if err != nil {
		writeServiceError(w, err, "check vote")
		return
	}

	resp := models.HasVotedResponse{HasVoted: voted}
	if voted {
		resp.Artist = &artist
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Eligibility handles GET /competitions/{id}/eligibility/{address}
func (h *VotingHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	eligibility, err := h.svc.CheckEligibility(r.Context(), r.PathValue("id"), r.PathValue("address"))
	if err != nil {
		writeServiceError(w, err, "check eligibility")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, eligibility)
}

// MinVoteTokens handles GET /competitions/{id}/min-vote-tokens
func (h *VotingHandler) MinVoteTokens(w http.ResponseWriter, r *http.Request) {
	min, err := h.svc.GetMinVoteTokens(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "get minimum vote tokens")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MinVoteTokensResponse{MinVoteTokens: min})
}
