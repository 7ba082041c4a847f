package services

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/minjoonc/portfolio-backend/internal/models"
)

// Event types on the WebSocket channel.
const (
	EventChatSend       = "chat:send"
	EventChatNewMessage = "chat:newMessage"
)

// ChatEvent is the payload broadcast to connected clients.
type ChatEvent struct {
	Type    string          `json:"type"`
	Message models.Feedback `json:"message"`
}

// ChatConn is the minimal interface our WebSocket implementation must satisfy.
type ChatConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// ClientConn tracks a single connected client. ClientID is captured once at
// upgrade time (forwarded header or remote address) and attached to every
// message the connection sends.
type ClientConn struct {
	ID       uuid.UUID
	ClientID string

	conn    ChatConn
	writeMu sync.Mutex
}

// WriteJSON serializes writes so broadcasts and per-connection replies never
// interleave on the underlying socket.
func (c *ClientConn) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// ChatHub is the registry of live connections. Broadcast is fire-and-forget to
// every registered client, the sender included; there is no backpressure,
// batching, or delivery acknowledgment.
type ChatHub struct {
	mu          sync.RWMutex
	connections map[uuid.UUID]*ClientConn
}

func NewChatHub() *ChatHub {
	return &ChatHub{connections: make(map[uuid.UUID]*ClientConn)}
}

// Register adds a connection and assigns its ephemeral id.
func (h *ChatHub) Register(clientID string, conn ChatConn) *ClientConn {
	cc := &ClientConn{
		ID:       uuid.New(),
		ClientID: clientID,
		conn:     conn,
	}

	h.mu.Lock()
	h.connections[cc.ID] = cc
	h.mu.Unlock()

	return cc
}

// Unregister removes a connection.
func (h *ChatHub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	delete(h.connections, id)
	h.mu.Unlock()
}

// Count returns the number of currently connected clients.
func (h *ChatHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends an event to every connected client. Best-effort: a failed
// write is logged and the connection dropped from the registry.
func (h *ChatHub) Broadcast(event ChatEvent) {
	h.mu.RLock()
	targets := make([]*ClientConn, 0, len(h.connections))
	for _, cc := range h.connections {
		targets = append(targets, cc)
	}
	h.mu.RUnlock()

	for _, cc := range targets {
		go func(cc *ClientConn) {
			if err := cc.WriteJSON(event); err != nil {
				log.Printf("error writing chat event to websocket: %v", err)
				h.Unregister(cc.ID)
			}
		}(cc)
	}
}
