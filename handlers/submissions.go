// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type SubmissionHandler struct {
	svc *competition.Service
}

func NewSubmissionHandler(svc *competition.Service) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// SubmitArt handles POST /competitions/{id}/submissions
func (h *SubmissionHandler) SubmitArt(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.SubmitArtRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id := r.PathValue("id")
	if err := h.svc.SubmitArt(r.Context(), id, caller, req); err != nil {
		writeServiceError(w, err, "submit art")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Submission{
		Address: caller,
		Name:    req.ArtistName,
	})
}

// ListArtworks handles GET /competitions/{id}/submissions
func (h *SubmissionHandler) ListArtworks(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.svc.GetCompArtists(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "list submissions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, artworks)
}

// UpdateSubmission handles PATCH /competitions/{id}/submissions/{artist}
// Only the submitting address may edit its artwork
func (h *SubmissionHandler) UpdateSubmission(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.UpdateSubmissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, err := h.svc.UpdateSubmissionMetadata(r.Context(), r.PathValue("id"), caller, r.PathValue("artist"), req)
	if err != nil {
		writeServiceError(w, err, "update submission")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// RemoveArtist handles DELETE /competitions/{id}/submissions/{artist}
// Admin only. Voters who chose the artist may vote again.
func (h *SubmissionHandler) RemoveArtist(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveArtist(r.Context(), caller, r.PathValue("id"), r.PathValue("artist")); err != nil {
		writeServiceError(w, err, "remove artist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
