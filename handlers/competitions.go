// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type CompetitionHandler struct {
	svc *competition.Service
}

func NewCompetitionHandler(svc *competition.Service) *CompetitionHandler {
	return &CompetitionHandler{svc: svc}
}

// CreateCompetition handles POST /competitions
func (h *CompetitionHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.CreateCompetitionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	comp, err := h.svc.CreateCompetition(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, err, "create competition")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCompetitionResponse{
		ID: comp.ID,
	})
}

// ListActive handles GET /competitions
// Returns competitions that are open, upcoming, or ended within the last day
func (h *CompetitionHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	active, err := h.svc.ActiveCompetitions(r.Context())
	if err != nil {
		writeServiceError(w, err, "list competitions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, active)
}

// GetCompetition handles GET /competitions/{id}
func (h *CompetitionHandler) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "competition id is required")
		return
	}

	status, err := h.svc.GetCompetition(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "get competition")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, status)
}

// DeleteCompetition handles DELETE /competitions/{id}
// Any funded pot is refunded to the deleting admin
func (h *CompetitionHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	refunded, err := h.svc.DeleteCompetition(r.Context(), caller, id)
	if err != nil {
		writeServiceError(w, err, "delete competition")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteCompetitionResponse{
		ID:       id,
		Refunded: refunded,
	})
}

// UpdateShareSchedule handles PUT /competitions/{id}/share-schedule
func (h *CompetitionHandler) UpdateShareSchedule(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.UpdateShareScheduleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	comp, err := h.svc.UpdateShareSchedule(r.Context(), caller, r.PathValue("id"), req.ShareSchedule)
	if err != nil {
		writeServiceError(w, err, "update share schedule")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UpdateShareScheduleRequest{
		ShareSchedule: comp.ShareSchedule,
	})
}
