package ws

import (
	"context"
	"encoding/json"
	"sync"

	"retail-mis-console/internal/service"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one open console tab
type Client struct {
	Scope string
	Conn  Conn
}

type message struct {
	scope   string
	payload []byte
}

// Hub fans session changes out to every tab of the same storage scope
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(lg *zap.Logger) *Hub {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message),
		done:       make(chan struct{}),
		logger:     lg,
	}
}

// Run serves the hub until ctx is cancelled, then closes every connection
func (h *Hub) Run(ctx context.Context) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mutex.Lock()
			if h.clients[c.Scope] == nil {
				h.clients[c.Scope] = make(map[*Client]struct{})
			}
			h.clients[c.Scope][c] = struct{}{}
			h.mutex.Unlock()
			h.logger.Debug("console tab connected", zap.String("scope", c.Scope))

		case c := <-h.unregister:
			h.mutex.Lock()
			h.remove(c)
			h.mutex.Unlock()

		case m := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients[m.scope] {
				if err := c.Conn.WriteMessage(websocket.TextMessage, m.payload); err != nil {
					h.logger.Debug("dropping console tab", zap.String("scope", c.Scope), zap.Error(err))
					h.remove(c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove must be called with the mutex held
func (h *Hub) remove(c *Client) {
	tabs, ok := h.clients[c.Scope]
	if !ok {
		return
	}
	if _, ok := tabs[c]; !ok {
		return
	}
	delete(tabs, c)
	c.Conn.Close()
	if len(tabs) == 0 {
		delete(h.clients, c.Scope)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	close(h.done)
	for scope, tabs := range h.clients {
		for c := range tabs {
			c.Conn.Close()
		}
		delete(h.clients, scope)
	}
}

// Register adds a tab. It returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Clients returns how many tabs of scope are connected
func (h *Hub) Clients(scope string) int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients[scope])
}

type sessionChanged struct {
	Type  string               `json:"type"`
	Event service.SessionEvent `json:"event"`
}

// SessionChanged implements service.SessionNotifier
func (h *Hub) SessionChanged(scope string, event service.SessionEvent) {
	payload, err := json.Marshal(sessionChanged{Type: "session_changed", Event: event})
	if err != nil {
		h.logger.Error("encode session event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- message{scope: scope, payload: payload}:
	case <-h.done:
	}
}
