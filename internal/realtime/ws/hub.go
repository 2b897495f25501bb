package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/rand"

	"sanaaBack/internal/realtime"
)

const (
	writeWait  = 20 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	pingJitter = 5 * time.Second
)

// Logger defines minimal logging interface required by hubs.
type Logger interface {
	Infof(string, ...interface{})
	Errorf(string, ...interface{})
}

// Frame is what the hub writes to clients.
type Frame struct {
	Type     string      `json:"type"`
	Channels []string    `json:"channels,omitempty"`
	Payload  interface{} `json:"payload,omitempty"`
}

type client struct {
	id     string
	userID string
	conn   *websocket.Conn
	mu     sync.Mutex
	cancel context.CancelFunc
}

// Hub keeps every open socket, possibly several per user, and bridges
// realtime subscriptions to them.
type Hub struct {
	logger  Logger
	broker  realtime.Broker
	window  time.Duration
	maxWait time.Duration

	upgrader websocket.Upgrader

	mu     sync.RWMutex
	conns  map[string]*client
	byUser map[string]map[string]struct{}
}

func NewHub(broker realtime.Broker, window time.Duration, logger Logger) *Hub {
	return &Hub{
		logger:  logger,
		broker:  broker,
		window:  window,
		maxWait: 5 * window,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns:  make(map[string]*client),
		byUser: make(map[string]map[string]struct{}),
	}
}

// Serve upgrades the request and subscribes the socket to channels.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID string, channels []string) {
	if userID == "" {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}
	for _, ch := range channels {
		if !realtime.AllowChannel(userID, ch) {
			http.Error(w, "channel not allowed: "+ch, http.StatusForbidden)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("ws upgrade failed: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &client{id: uuid.NewString(), userID: userID, conn: conn, cancel: cancel}

	h.mu.Lock()
	h.conns[c.id] = c
	set, ok := h.byUser[userID]
	if !ok {
		set = make(map[string]struct{})
		h.byUser[userID] = set
	}
	set[c.id] = struct{}{}
	h.mu.Unlock()

	if h.logger != nil {
		h.logger.Infof("ws %s connected (%d channels)", userID, len(channels))
	}

	if len(channels) > 0 && h.broker != nil {
		sub, err := h.broker.Subscribe(ctx, channels...)
		if err != nil {
			if h.logger != nil {
				h.logger.Errorf("ws %s subscribe failed: %v", userID, err)
			}
			h.write(c, Frame{Type: "error", Payload: "subscribe failed"})
			h.closeConn(c)
			return
		}
		go func() {
			defer sub.Close()
			realtime.Debounce(ctx, sub, h.window, h.maxWait, func(changed []string) {
				h.write(c, Frame{Type: "invalidate", Channels: changed})
			})
		}()
	}

	go h.pingLoop(ctx, c)
	go h.readLoop(c)
}

func (h *Hub) pingLoop(ctx context.Context, c *client) {
	period := pingPeriod + time.Duration(rand.Int63n(int64(pingJitter)))
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.writeFn(c, func(conn *websocket.Conn) error {
				return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			})
		}
	}
}

func (h *Hub) readLoop(c *client) {
	defer h.closeConn(c)

	conn := c.conn
	conn.SetReadLimit(16 << 10)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))
		if mt == websocket.TextMessage && strings.EqualFold(strings.TrimSpace(string(message)), "ping") {
			h.writeFn(c, func(conn *websocket.Conn) error {
				return conn.WriteMessage(websocket.TextMessage, []byte("pong"))
			})
		}
	}
}

func (h *Hub) closeConn(c *client) {
	c.cancel()
	_ = c.conn.Close()
	h.mu.Lock()
	if _, ok := h.conns[c.id]; ok {
		delete(h.conns, c.id)
		if set, ok := h.byUser[c.userID]; ok {
			delete(set, c.id)
			if len(set) == 0 {
				delete(h.byUser, c.userID)
			}
		}
		if h.logger != nil {
			h.logger.Infof("ws %s disconnected", c.userID)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) writeFn(c *client, fn func(*websocket.Conn) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := fn(c.conn); err != nil {
		if h.logger != nil {
			h.logger.Errorf("ws %s write failed: %v", c.userID, err)
		}
		go h.closeConn(c)
	}
}

func (h *Hub) write(c *client, frame Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		if h.logger != nil {
			h.logger.Errorf("ws marshal failed: %v", err)
		}
		return
	}
	h.writeFn(c, func(conn *websocket.Conn) error {
		return conn.WriteMessage(websocket.TextMessage, data)
	})
}

// Push sends an event frame to every socket the user has open.
func (h *Hub) Push(userID string, kind string, payload interface{}) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.byUser[userID]))
	for id := range h.byUser[userID] {
		if c, ok := h.conns[id]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()
	for _, c := range targets {
		h.write(c, Frame{Type: kind, Payload: payload})
	}
}

// Connected returns the number of open sockets for userID.
func (h *Hub) Connected(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID])
}
