package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-backend/internal/models"
)

func TestEncodeMessageCreated(t *testing.T) {
	msg := &models.ChatMessage{
		ID:        7,
		Question:  "q",
		Answer:    "a",
		CreatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	data, err := EncodeMessageCreated(msg)
	require.NoError(t, err)

	var envelope struct {
		Type    string             `json:"type"`
		Payload models.ChatMessage `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, EventMessageCreated, envelope.Type)
	assert.Equal(t, int64(7), envelope.Payload.ID)
	assert.JSONEq(t, `{"type":"message_created","payload":{"id":7,"question":"q","answer":"a","created_at":"2024-01-01T10:00:00Z"}}`, string(data))
}
