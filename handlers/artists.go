// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type ArtistHandler struct {
	svc *competition.Service
}

func NewArtistHandler(svc *competition.Service) *ArtistHandler {
	return &ArtistHandler{svc: svc}
}

// Register handles POST /artists
// Registers the caller's profile; names are unique across the registry
func (h *ArtistHandler) Register(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.ArtistInfoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	profile, err := h.svc.AddArtistInfo(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, err, "register artist")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, profile)
}

// GetMe handles GET /artists/me
func (h *ArtistHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	profile, err := h.svc.GetArtistInfo(r.Context(), caller)
	if err != nil {
		writeServiceError(w, err, "get artist")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// UpdateMe handles PATCH /artists/me
func (h *ArtistHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.UpdateArtistInfoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	profile, err := h.svc.UpdateArtistInfo(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, err, "update artist")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// List handles GET /artists
func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.GetArtists(r.Context())
	if err != nil {
		writeServiceError(w, err, "list artists")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profiles)
}

// Get handles GET /artists/{address}
func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.GetArtistInfo(r.Context(), r.PathValue("address"))
	if err != nil {
		writeServiceError(w, err, "get artist")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, profile)
}

// HasRegistered handles GET /artists/{address}/registered
func (h *ArtistHandler) HasRegistered(w http.ResponseWriter, r *http.Request) {
	registered, err := h.svc.HasRegistered(r.Context(), r.PathValue("address"))
	if err != nil {
		writeServiceError(w, err, "check registration")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HasRegisteredResponse{Registered: registered})
}

// Migrate handles PUT /artists/{address}
// Admin only. Writes a full profile including its counters.
func (h *ArtistHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var profile models.ArtistProfile
	if err := middleware.ParseJSONBody(r, &profile); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	saved, err := h.svc.MigrateArtist(r.Context(), caller, r.PathValue("address"), profile)
	if err != nil {
		writeServiceError(w, err, "migrate artist")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, saved)
}

// Remove handles DELETE /artists/{address}
// Admin only
func (h *ArtistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.svc.RemoveRegisteredArtist(r.Context(), caller, r.PathValue("address")); err != nil {
		writeServiceError(w, err, "remove artist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
