// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type PayoutHandler struct {
	svc *competition.Service
}

func NewPayoutHandler(svc *competition.Service) *PayoutHandler {
	return &PayoutHandler{svc: svc}
}

// FundPot handles POST /competitions/{id}/pot
// Moves the caller's tokens into escrow and grows the pot
func (h *PayoutHandler) FundPot(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.FundPotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	pot, err := h.svc.FundPot(r.Context(), r.PathValue("id"), caller, req.Amount)
	if err != nil {
		writeServiceError(w, err, "fund pot")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PotResponse{Pot: pot})
}

// GetPot handles GET /competitions/{id}/pot
func (h *PayoutHandler) GetPot(w http.ResponseWriter, r *http.Request) {
	pot, err := h.svc.GetPot(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "get pot")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PotResponse{Pot: pot})
}

// PayWinners handles POST /competitions/{id}/payouts
// Anyone may trigger the payout once voting has ended
func (h *PayoutHandler) PayWinners(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.PayWinners(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "pay winners")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PayoutResponse{
		Distributed: report != nil,
		Report:      report,
	})
}
