// Package realtime implementa el canal websocket del chat: un room por match,
// cada conexión con su cola de envío propia.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pet-marketplace/internal/platform/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 32
)

var ErrHubClosed = errors.New("realtime hub closed")

type client struct {
	conn *websocket.Conn
	room string
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	closed   bool
	log      logger.Logger
	upgrader websocket.Upgrader
}

func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// El auth ya pasó por el middleware; el SPA puede vivir en otro origen.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Room arma la clave de room para un match.
func Room(matchID string) string { return "match:" + matchID }

// Broadcast serializa v y lo encola en cada suscriptor del room.
// Un cliente con la cola llena se desconecta en vez de frenar al resto.
func (h *Hub) Broadcast(_ context.Context, room string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("realtime: encode: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrHubClosed
	}

	for c := range h.rooms[room] {
		select {
		case c.send <- payload:
		default:
			h.log.Warn("realtime: slow subscriber dropped", map[string]any{"room": room})
			h.removeLocked(c)
		}
	}
	return nil
}

// Subscribers devuelve cuántas conexiones hay en el room.
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Serve hace el upgrade y registra la conexión en el room hasta que el cliente cierre.
// La autorización del room es responsabilidad del caller.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el error HTTP.
		return err
	}

	c := &client{conn: conn, room: room, send: make(chan []byte, sendBuffer)}
	if err := h.add(c); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return err
	}

	go h.writePump(c)
	h.readPump(c)
	return nil
}

// Close desconecta a todos. Los Broadcast posteriores devuelven ErrHubClosed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for _, members := range h.rooms {
		for c := range members {
			h.removeLocked(c)
		}
	}
}

func (h *Hub) add(c *client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}
	members, ok := h.rooms[c.room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[c.room] = members
	}
	members[c] = struct{}{}
	return nil
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := members[c]; !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, c.room)
	}
	c.close()
}

// readPump solo drena frames de control; el chat entra por POST.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("realtime: read error", map[string]any{"room": c.room, "err": err.Error()})
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("realtime: write error", map[string]any{"room": c.room, "err": err.Error()})
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
