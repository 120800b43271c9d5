// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
	"github.com/danielhkuo/easel/models"
)

type AdminHandler struct {
	svc *competition.Service
}

func NewAdminHandler(svc *competition.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// GetAdmins handles GET /admins
func (h *AdminHandler) GetAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.svc.GetAdmins(r.Context())
	if err != nil {
		writeServiceError(w, err, "get admins")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, admins)
}

// UpdateAdmins handles PUT /admins
// Either admin may replace either slot
func (h *AdminHandler) UpdateAdmins(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req models.UpdateAdminsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	admins, err := h.svc.UpdateAdmins(r.Context(), caller, req)
	if err != nil {
		writeServiceError(w, err, "update admins")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, admins)
}
