package websockets

import (
	"log/slog"
	"net/http"

	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/handlers/reply"
	"github.com/chris/wallet-transfer-policy/pkg/mapping"
	"github.com/chris/wallet-transfer-policy/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler handles WebSocket connections.
type Handler struct {
	connManager websockets.ConnectionManager
	authorizer  auth.Authorizer
}

// NewHandler creates a new Handler. authorizer decides who may follow an
// account's signals.
func NewHandler(connManager websockets.ConnectionManager, authorizer auth.Authorizer) *Handler {
	return &Handler{
		connManager: connManager,
		authorizer:  authorizer,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections by default for local development.
		return true
	},
}

// ServeHTTP upgrades the request and streams the signals of the account named
// by the account query parameter until the client disconnects. Only the
// account's owner or one of its modules may subscribe.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	addr, err := mapping.ParseAddress("account", r.URL.Query().Get("account"))
	if err != nil {
		reply.Error(w, r, err)
		return
	}
	if _, err := h.authorizer.ActingOwner(r.Context(), addr); err != nil {
		reply.Error(w, r, err)
		return
	}
	account := addr.Hex()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	connectionID := uuid.New().String()
	slog.Info("Client connected", "connectionId", connectionID, "account", account)
	h.connManager.AddConnection(connectionID, account, conn)

	defer func() {
		slog.Info("Client disconnected", "connectionId", connectionID)
		h.connManager.RemoveConnection(connectionID)
	}()

	// The server ignores incoming messages; reading is how a disconnect is detected.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("unexpected close error", "error", err)
			}
			break
		}
	}
}
