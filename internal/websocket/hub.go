package websocket

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/models"
	"chatbot-backend/internal/services"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one socket with its own outbound queue. Only writePump writes to
// conn.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes every newly created chat message to all connected sockets.
// Messages arrive either from Redis (Run) or directly via PublishMessage
// when the server runs without Redis.
type Hub struct {
	mu          sync.Mutex
	clients     map[*client]struct{}
	redisClient *redis.Client
}

// NewHub returns a hub; redisClient may be nil.
func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		clients:     make(map[*client]struct{}),
		redisClient: redisClient,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	go h.writePump(c)

	// The feed is one-way; reading only detects the disconnect.
	go func() {
		defer h.unregister(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// writePump drains c.send until the hub closes it, then closes the socket.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.WithError(err).Debug("websocket write failed, dropping connection")
			h.unregister(c)
		}
	}
}

// Run forwards Redis pub/sub traffic until ctx is done. Without a Redis
// client it returns immediately.
func (h *Hub) Run(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	pubsub := h.redisClient.Subscribe(ctx, models.ChatMessagesChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.Broadcast([]byte(msg.Payload))
		}
	}
}

// PublishMessage implements services.MessagePublisher for single-process use.
func (h *Hub) PublishMessage(ctx context.Context, msg *models.ChatMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := services.EncodeMessageCreated(msg)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// Broadcast queues data for every socket without waiting on any of them. A
// socket whose queue is full is dropped.
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			logrus.Debug("websocket send queue full, dropping connection")
			h.removeLocked(c)
		}
	}
}

// Count reports the number of live connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every socket once its queued messages are flushed.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	logrus.WithField("total", len(h.clients)).Debug("websocket connected")
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.removeLocked(c) {
		logrus.WithField("total", len(h.clients)).Debug("websocket disconnected")
	}
}

// removeLocked closes c's queue, which ends its writePump. Callers hold h.mu.
func (h *Hub) removeLocked(c *client) bool {
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	return true
}

var _ services.MessagePublisher = (*Hub)(nil)
