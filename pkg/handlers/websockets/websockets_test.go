package websockets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/wallet-transfer-policy/pkg/auth"
	"github.com/chris/wallet-transfer-policy/pkg/models"
	hub "github.com/chris/wallet-transfer-policy/pkg/websockets"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	account  = common.HexToAddress("0xa1")
	owner    = common.HexToAddress("0x0a")
	module   = common.HexToAddress("0x0b")
	stranger = common.HexToAddress("0x0c")
)

func newAuthorizer() auth.Authorizer {
	directory := auth.NewMemoryDirectory()
	directory.Register(account, owner, module)
	return auth.DirectoryAuthorizer{Directory: directory}
}

// as stands in for the relay middleware.
func as(caller common.Address, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithCaller(r.Context(), caller)))
	})
}

func TestServeHTTP(t *testing.T) {
	for _, caller := range []common.Address{owner, module} {
		h := hub.NewHub()
		server := httptest.NewServer(as(caller, NewHandler(h, newAuthorizer())))

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?account=" + account.Hex()
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)

		require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)

		event := models.Event{EventID: "evt-1", Account: account.Hex(), Type: "LimitChanged"}
		require.NoError(t, h.Publish(context.Background(), event))

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg hub.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		assert.Equal(t, event, msg.Payload)

		conn.Close()
		assert.Eventually(t, func() bool { return h.Len() == 0 }, time.Second, 10*time.Millisecond)
		server.Close()
	}
}

func TestServeHTTPRejects(t *testing.T) {
	tests := []struct {
		name    string
		handler func(http.Handler) http.Handler
		query   string
		want    int
	}{
		{"Invalid Account", func(h http.Handler) http.Handler { return as(owner, h) }, "?account=nope", http.StatusBadRequest},
		{"Missing Account", func(h http.Handler) http.Handler { return as(owner, h) }, "", http.StatusBadRequest},
		{"Anonymous", func(h http.Handler) http.Handler { return h }, "?account=" + account.Hex(), http.StatusForbidden},
		{"Stranger", func(h http.Handler) http.Handler { return as(stranger, h) }, "?account=" + account.Hex(), http.StatusForbidden},
		{"Unknown Account", func(h http.Handler) http.Handler { return as(owner, h) }, "?account=" + stranger.Hex(), http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := hub.NewHub()
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ws"+tc.query, nil)

			tc.handler(NewHandler(h, newAuthorizer())).ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			assert.Equal(t, 0, h.Len())
		})
	}
}
