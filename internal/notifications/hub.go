package notifications

import (
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Conn is the slice of a websocket connection the hub needs. *websocket.Conn
// satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub keeps a registry of open push connections and fans broadcast messages
// out to all of them. Delivery is best-effort, at most once, with no
// ordering guarantee across connections.
type Hub struct {
	mu    sync.Mutex
	conns map[string]Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]Conn)}
}

// Register adds a connection and returns its id for Unregister.
func (h *Hub) Register(conn Conn) string {
	id := uuid.NewString()
	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()
	return id
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	h.mu.Unlock()
}

// Broadcast sends message to every open connection. A connection that fails
// to take the write is closed and dropped from the registry; there is no
// retry.
func (h *Hub) Broadcast(message string) {
	h.mu.Lock()
	targets := make(map[string]Conn, len(h.conns))
	for id, conn := range h.conns {
		targets[id] = conn
	}
	h.mu.Unlock()

	payload := []byte(message)
	for id, conn := range targets {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			slog.Info("dropping dead push connection", "conn_id", id, "error", err)
			_ = conn.Close()
			h.Unregister(id)
		}
	}
}

// Count reports the number of registered connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
