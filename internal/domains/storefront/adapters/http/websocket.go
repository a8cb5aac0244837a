package storefronthttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Apurer/web-larek/internal/shared/eventbus"
)

const (
	writeWait    = 5 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	clientBuffer = 32

	// EventSnapshot is sent once when a client connects.
	EventSnapshot = "state"
)

// Message is one frame of the event stream.
type Message struct {
	Event string `json:"event"`
	View  View   `json:"view"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithHubLogger injects a logger.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithCheckOrigin overrides the upgrade origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) HubOption {
	return func(h *Hub) {
		if fn != nil {
			h.upgrader.CheckOrigin = fn
		}
	}
}

// Hub streams every bus event, together with the view it produced, to the
// connected websocket clients. Slow clients are dropped instead of blocking
// the emitter.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	screen   *Screen
	upgrader websocket.Upgrader
	logger   *slog.Logger
	sub      *eventbus.Subscription
}

// NewHub subscribes a hub to every event on bus.
func NewHub(bus *eventbus.Bus, screen *Screen, opts ...HubOption) *Hub {
	h := &Hub{
		clients: map[*client]struct{}{},
		screen:  screen,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.sub = bus.OnMatch(eventbus.Any(), h.forward)
	return h
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close unsubscribes the hub and disconnects every client.
func (h *Hub) Close() {
	h.sub.Unsubscribe()
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}

// ServeWS upgrades the request and streams events until the client leaves.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	cl := &client{conn: conn, send: make(chan []byte, clientBuffer)}
	if frame, err := h.frame(EventSnapshot); err == nil {
		cl.send <- frame
	}
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()

	go h.writePump(cl)
	h.readPump(cl)
}

func (h *Hub) forward(ctx context.Context, event eventbus.Event) error {
	frame, err := h.frame(event.Name)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			delete(h.clients, c)
			c.close()
			h.logger.LogAttrs(ctx, slog.LevelWarn, "dropping slow websocket client", slog.String("event", event.Name))
		}
	}
	return nil
}

func (h *Hub) frame(event string) ([]byte, error) {
	return json.Marshal(Message{Event: event, View: h.screen.Snapshot()})
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
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
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
