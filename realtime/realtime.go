// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/easel/competition"
	"github.com/danielhkuo/easel/metrics"
	"github.com/danielhkuo/easel/models"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

type client struct {
	conn *websocket.Conn
	send chan models.LiveEvent
}

// Hub fans competition events out to websocket clients subscribed to that
// competition
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*client]bool)}
}

// Publish queues event for every client of its competition. Clients whose
// buffer is full are disconnected.
func (h *Hub) Publish(event models.LiveEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[event.CompetitionID] {
		select {
		case c.send <- event:
		default:
			slog.Warn("dropping slow live client", "competition_id", event.CompetitionID)
			close(c.send)
			h.remove(event.CompetitionID, c)
		}
	}
}

// Clients returns the number of subscribers of a competition
func (h *Hub) Clients(competitionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[competitionID])
}

// Serve streams events for competitionID to conn until the peer goes away
// or ctx is cancelled. It closes conn before returning.
func (h *Hub) Serve(ctx context.Context, competitionID string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan models.LiveEvent, sendBuffer)}
	h.register(competitionID, c)
	defer func() {
		h.unregister(competitionID, c)
		conn.Close()
	}()

	// Incoming messages are ignored; reading detects the close
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case event, ok := <-c.send:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				slog.Warn("live write failed", "competition_id", competitionID, "error", err)
				return
			}
		}
	}
}

func (h *Hub) register(competitionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[competitionID] == nil {
		h.clients[competitionID] = make(map[*client]bool)
	}
	h.clients[competitionID][c] = true
	metrics.LiveClients.Inc()
}

func (h *Hub) unregister(competitionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(competitionID, c)
}

// remove expects h.mu to be held
func (h *Hub) remove(competitionID string, c *client) {
	clients, ok := h.clients[competitionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.clients, competitionID)
	}
	metrics.LiveClients.Dec()
}

var _ competition.Notifier = (*Hub)(nil)
