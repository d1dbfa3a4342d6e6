package websockets

import (
	"time"
)

// Conn is the part of a websocket connection the hub writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// ConnectionManager tracks live connections.
type ConnectionManager interface {
	AddConnection(connectionID, account string, conn Conn)
	RemoveConnection(connectionID string)
}
