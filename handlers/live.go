// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/realtime"
)

type LiveHandler struct {
	svc      *competition.Service
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(svc *competition.Service, hub *realtime.Hub) *LiveHandler {
	return &LiveHandler{
		svc: svc,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is public and read-only
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles GET /competitions/{id}/live
// Upgrades to a websocket that streams live events for the competition
func (h *LiveHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.svc.GetPot(r.Context(), id); err != nil {
		writeServiceError(w, err, "subscribe")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		slog.Warn("websocket upgrade failed", "competition_id", id, "error", err)
		return
	}

	slog.Info("live client connected", "competition_id", id)
	h.hub.Serve(r.Context(), id, conn)
	slog.Info("live client disconnected", "competition_id", id)
}
