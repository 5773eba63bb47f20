// Package wshub fans game snapshots out to the WebSocket viewers of one
// session. The first client drives the session; later clients spectate the
// same frames.
package wshub

import (
	"context"
	"sync"

	"github.com/coder/websocket"

	"aimtrainer/internal/settings"
)

// ClientMessage is the JSON input structure received from clients.
type ClientMessage struct {
	Type     string             `json:"t"`
	X        float64            `json:"x,omitempty"`
	Y        float64            `json:"y,omitempty"`
	Key      string             `json:"k,omitempty"`
	Action   string             `json:"a,omitempty"`
	Settings *settings.Settings `json:"s,omitempty"`
}

// Input message types.
const (
	MsgMove     = "move"
	MsgShoot    = "shoot"
	MsgKey      = "key"
	MsgAction   = "action"
	MsgSettings = "settings"
)

// Client represents a single WebSocket connection in the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection. Runs on its own goroutine per client.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages the WebSocket connections attached to one session.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

// Unregister removes a client and closes its Send channel.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		close(c.Send)
		delete(h.clients, id)
	}
}

// Count returns how many clients are attached.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a pre-marshaled frame to every client. Non-blocking: a
// client that cannot keep up loses frames, never the loop.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		select {
		case c.Send <- data:
		default:
			// Drop frame if channel full
		}
	}
}

// Close unregisters every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.Send)
		delete(h.clients, id)
	}
}
