// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
)

type ResultsHandler struct {
	svc *competition.Service
}

func NewResultsHandler(svc *competition.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetRankings handles GET /competitions/{id}/rankings
// Rankings are live while voting runs; they do not finalize the competition
func (h *ResultsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.svc.Rankings(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "get rankings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rankings)
}

// GetDistributions handles GET /competitions/{id}/payouts
func (h *ResultsHandler) GetDistributions(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.Distributions(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "list payouts")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, reports)
}
