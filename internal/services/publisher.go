package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chatbot-backend/internal/models"
)

const EventMessageCreated = "message_created"

// RedisPublisher sends new records to models.ChatMessagesChannel so every
// server instance's websocket hub can forward them.
type RedisPublisher struct {
	redis *redis.Client
}

func NewRedisPublisher(redisClient *redis.Client) *RedisPublisher {
	return &RedisPublisher{redis: redisClient}
}

func (p *RedisPublisher) PublishMessage(ctx context.Context, msg *models.ChatMessage) error {
	data, err := EncodeMessageCreated(msg)
	if err != nil {
		return err
	}
	if err := p.redis.Publish(ctx, models.ChatMessagesChannel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish message %d: %w", msg.ID, err)
	}
	return nil
}

// EncodeMessageCreated renders the live-feed envelope for msg.
func EncodeMessageCreated(msg *models.ChatMessage) ([]byte, error) {
	data, err := json.Marshal(models.WSMessage{Type: EventMessageCreated, Payload: msg})
	if err != nil {
		return nil, fmt.Errorf("failed to encode message %d: %w", msg.ID, err)
	}
	return data, nil
}
