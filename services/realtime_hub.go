package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	EventID string
	UserID  uint
	Conn    *websocket.Conn
}

// RealtimeHub fans menu updates out to every guest watching an event.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.EventID] == nil {
		h.clients[c.EventID] = make(map[*WSClient]struct{})
	}
	h.clients[c.EventID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.EventID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.EventID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *RealtimeHub) BroadcastMenu(eventID string, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[eventID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
