package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-backend/internal/models"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_PublishMessageReachesAllClients(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()
	defer hub.Close()

	first := dialHub(t, srv)
	defer first.Close()
	second := dialHub(t, srv)
	defer second.Close()

	require.Eventually(t, func() bool { return hub.Count() == 2 }, 2*time.Second, 10*time.Millisecond)

	msg := &models.ChatMessage{ID: 3, Question: "q", Answer: "a", CreatedAt: time.Now().UTC()}
	require.NoError(t, hub.PublishMessage(context.Background(), msg))

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var envelope struct {
			Type    string             `json:"type"`
			Payload models.ChatMessage `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &envelope))
		assert.Equal(t, "message_created", envelope.Type)
		assert.Equal(t, int64(3), envelope.Payload.ID)
	}
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dialHub(t, srv)
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastDropsClientWithFullQueue(t *testing.T) {
	hub := NewHub(nil)
	stalled := &client{send: make(chan []byte, 1)}
	hub.register(stalled)

	done := make(chan struct{})
	go func() {
		hub.Broadcast([]byte("one"))
		hub.Broadcast([]byte("two"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a client that is not draining")
	}
	assert.Equal(t, 0, hub.Count())

	queued, ok := <-stalled.send
	require.True(t, ok)
	assert.Equal(t, "one", string(queued))
	_, ok = <-stalled.send
	assert.False(t, ok, "queue must be closed once the client is dropped")
}

func TestHub_PublishMessageHonoursCancelledContext(t *testing.T) {
	hub := NewHub(nil)
	queued := &client{send: make(chan []byte, 1)}
	hub.register(queued)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := hub.PublishMessage(ctx, &models.ChatMessage{ID: 1, Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, queued.send)
}

func TestHub_CloseEndsConnections(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dialHub(t, srv)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Count())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestHub_RunWithoutRedisReturns(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately without a Redis client")
	}
}
