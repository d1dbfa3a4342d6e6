// Package websockets pushes policy signals to connected websocket clients.
package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/models"
	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 5 * time.Second

	// sendBuffer is how many signals a connection may fall behind before it
	// is dropped.
	sendBuffer = 64
)

type connection struct {
	account string
	conn    Conn
	send    chan []byte

	mu     sync.Mutex
	closed bool
}

// offer queues payload without blocking. It reports false when the
// connection's buffer is full.
func (c *connection) offer(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *connection) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub fans signals out to local connections. Every connection registers for
// one account and only receives that account's signals. Publish never waits
// on a client: each connection has its own writer, and a client that falls
// behind is disconnected.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{connections: make(map[string]*connection)}
}

var _ ConnectionManager = (*Hub)(nil)

// AddConnection implements ConnectionManager.
func (h *Hub) AddConnection(connectionID, account string, conn Conn) {
	c := &connection{account: account, conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	old := h.connections[connectionID]
	h.connections[connectionID] = c
	h.mu.Unlock()
	if old != nil {
		old.shutdown()
	}
	go h.writeLoop(connectionID, c)
}

// RemoveConnection implements ConnectionManager.
func (h *Hub) RemoveConnection(connectionID string) {
	h.mu.Lock()
	c := h.connections[connectionID]
	delete(h.connections, connectionID)
	h.mu.Unlock()
	if c != nil {
		c.shutdown()
	}
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish queues the signal for every connection registered for its account.
func (h *Hub) Publish(ctx context.Context, event models.Event) error {
	payload, err := json.Marshal(Message{Type: MessageTypePolicyEvent, Payload: event})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.RLock()
	targets := make(map[string]*connection)
	for id, c := range h.connections {
		if c.account == event.Account {
			targets[id] = c
		}
	}
	h.mu.RUnlock()

	for id, c := range targets {
		if !c.offer(payload) {
			slog.Info("slow connection found, deleting", "connectionId", id)
			h.drop(id, c)
		}
	}
	return nil
}

func (h *Hub) writeLoop(connectionID string, c *connection) {
	for payload := range c.send {
		if err := c.write(payload); err != nil {
			slog.Info("stale connection found, deleting", "connectionId", connectionID, "error", err)
			h.drop(connectionID, c)
			return
		}
	}
}

// drop closes c and forgets it, unless the id was re-registered meanwhile.
func (h *Hub) drop(connectionID string, c *connection) {
	_ = c.conn.Close()
	h.mu.Lock()
	if h.connections[connectionID] == c {
		delete(h.connections, connectionID)
	}
	h.mu.Unlock()
	c.shutdown()
}

func (c *connection) write(payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
