// Package ws pushes refresh notices to connected browser clients. The
// dashboard never streams data over the socket; a notice only tells the
// front-end that a fresh snapshot is available to fetch.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lomoval/famboard/internal/model"
	log "github.com/sirupsen/logrus"
)

// Notice is the payload broadcast to browsers. A notice with a kind
// forwards a hub notification; a notice without one announces that a fresh
// snapshot is ready to fetch.
type Notice struct {
	Kind      model.NotificationKind `json:"kind,omitempty"`
	FamilyID  string                 `json:"familyId,omitempty"`
	Refreshed time.Time              `json:"refreshed"`
}

// Hub maintains the set of active clients and broadcasts notices to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a notice to every connected client. A client with a full
// send buffer is skipped; the front-end refetches on the next notice.
func (h *Hub) Broadcast(n Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Errorf("failed to encode notice: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
