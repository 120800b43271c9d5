// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/easel/auth"
	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/middleware"
)

// statusFor maps a service error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, competition.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, competition.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, competition.ErrInvalidWindow), errors.Is(err, competition.ErrInvalidInput):
		return http.StatusBadRequest
	// NotEligible is checked first: a vote outside the window is both
	case errors.Is(err, competition.ErrNotEligible):
		return http.StatusConflict
	case errors.Is(err, competition.ErrAlreadyExists), errors.Is(err, competition.ErrStateViolation):
		return http.StatusConflict
	case errors.Is(err, competition.ErrOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, competition.ErrExternalCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes err as a JSON error. Unexpected errors are logged
// and reported as "Failed to <action>".
func writeServiceError(w http.ResponseWriter, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, status, "Failed to "+action)
		return
	}
	if status == http.StatusBadGateway {
		slog.Warn("token service call failed", "action", action, "error", err)
	}
	middleware.ErrorResponse(w, status, err.Error())
}

// requireCaller returns the authenticated caller or writes 401
func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Bearer token required")
		return "", false
	}
	return caller, true
}
