package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 8
)

// MessageTypeObservation is sent whenever a new observation is available
const MessageTypeObservation = "observation"

// Message is the envelope for every websocket frame
type Message struct {
	Type string          `json:"type"`
	Data observationView `json:"data"`
}

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub streams observations to websocket subscribers
type Hub struct {
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu      sync.RWMutex
	clients map[*hubClient]struct{}
	latest  []byte
}

// NewHub creates an empty hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		logger:  logger.Named("websocket"),
		clients: make(map[*hubClient]struct{}),
	}
}

// Publish sends an observation to every subscriber and remembers it for
// clients that connect later. Subscribers that cannot keep up are dropped.
func (h *Hub) Publish(obs Observation) {
	payload, err := json.Marshal(Message{Type: MessageTypeObservation, Data: newObservationView(obs)})
	if err != nil {
		h.logger.Error("Failed to encode observation", zap.Error(err))
		return
	}

	var slow []*hubClient

	h.mu.Lock()
	h.latest = payload
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.Unlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow websocket client", zap.String("remote", c.conn.RemoteAddr().String()))
		h.unregister(c)
	}
}

// ClientCount returns the number of connected subscribers
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams observations until the client goes away
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	c := &hubClient{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.send <- h.latest
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("Client registered", zap.Int("client_count", count))

	go c.writePump()
	h.readPump(c)
}

// Close disconnects every subscriber
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) unregister(c *hubClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug("Client unregistered", zap.Int("client_count", count))
}

// readPump discards incoming frames; it exists to notice disconnects and pongs
func (h *Hub) readPump(c *hubClient) {
	defer h.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
