// Package wshub broadcasts completed-identification events to connected
// websocket clients. Adapted from CineVault's internal/api/websocket.go
// (WSHub/WSClient/WSMessage and the accept/read/write goroutine shape);
// scoped down to one event type (spec §6's audit record) instead of
// CineVault's multi-event task-progress protocol, and the active-task
// replay-on-connect feature is dropped since an identification event is
// a point-in-time fact, not ongoing task state a late joiner needs to
// catch up on.
package wshub

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"nhooyr.io/websocket"
)

// Event is broadcast once per completed identification.
type Event struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	MediaID   string `json:"media_id,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and fans Broadcast out to all of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

func (h *Hub) Broadcast(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("wshub: marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (h *Hub) addClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and streams Broadcast events to it
// until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("wshub: accept error: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 64)}
	h.addClient(c)
	log.Println("wshub: client connected")

	ctx := r.Context()

	go func() {
		defer conn.Close(websocket.StatusNormalClosure, "")
		for msg := range c.send {
			if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}()

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			break
		}
	}

	h.removeClient(c)
	log.Println("wshub: client disconnected")
}
