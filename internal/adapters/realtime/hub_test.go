package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-marketplace/internal/platform/logger"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitSubscribers(t *testing.T, h *Hub, room string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Subscribers(room) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	h := NewHub(logger.Nop())
	defer h.Close()

	srvA := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, Room("a"))
	}))
	defer srvA.Close()
	srvB := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, Room("b"))
	}))
	defer srvB.Close()

	a := dial(t, srvA)
	b := dial(t, srvB)
	waitSubscribers(t, h, Room("a"), 1)
	waitSubscribers(t, h, Room("b"), 1)

	require.NoError(t, h.Broadcast(context.Background(), Room("a"), map[string]string{"body": "hola"}))

	_ = a.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got map[string]string
	require.NoError(t, a.ReadJSON(&got))
	assert.Equal(t, "hola", got["body"])

	_ = b.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, _, err := b.ReadMessage()
	assert.Error(t, err, "room b must not receive room a traffic")
}

func TestHub_ClientDisconnectLeavesRoom(t *testing.T) {
	h := NewHub(logger.Nop())
	defer h.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, Room("m1"))
	}))
	defer srv.Close()

	conn := dial(t, srv)
	waitSubscribers(t, h, Room("m1"), 1)

	require.NoError(t, conn.Close())
	waitSubscribers(t, h, Room("m1"), 0)
}

func TestHub_BroadcastAfterClose(t *testing.T) {
	h := NewHub(logger.Nop())
	h.Close()

	err := h.Broadcast(context.Background(), Room("x"), "ping")
	assert.ErrorIs(t, err, ErrHubClosed)
}

func TestHub_BroadcastEmptyRoom(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	assert.NoError(t, h.Broadcast(context.Background(), Room("nobody"), "ping"))
	assert.Equal(t, 0, h.Subscribers(Room("nobody")))
}
