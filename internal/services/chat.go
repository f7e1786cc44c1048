package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/models"
)

// MessageStore is the persistence contract the chat service relies on.
// Errors from either method are *repository.StorageError unless the caller
// broke the contract.
type MessageStore interface {
	Append(ctx context.Context, question, answer string) (*models.ChatMessage, error)
	ListRecent(ctx context.Context, limit int) ([]*models.ChatMessage, error)
}

// MessagePublisher fans newly created records out to live viewers.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, msg *models.ChatMessage) error
}

const publishTimeout = 2 * time.Second

type ChatService struct {
	store     MessageStore
	generator AnswerGenerator
	publisher MessagePublisher
}

// NewChatService wires the service. publisher may be nil.
func NewChatService(store MessageStore, generator AnswerGenerator, publisher MessagePublisher) *ChatService {
	if generator == nil {
		generator = NewTemplateAnswerGenerator()
	}
	return &ChatService{
		store:     store,
		generator: generator,
		publisher: publisher,
	}
}

// Ask validates the question, generates an answer and persists the pair.
// Nothing is written when validation fails. Every successful call creates a
// new record, even for a repeated question.
func (s *ChatService) Ask(ctx context.Context, question string) (*models.ChatMessage, error) {
	if err := ValidateAskQuestion(models.AskQuestionRequest{Question: question}); err != nil {
		return nil, err
	}

	answer := s.generator.Generate(question)

	// Once persisting starts it runs to completion even if the caller goes away.
	msg, err := s.store.Append(context.WithoutCancel(ctx), question, answer)
	if err != nil {
		logrus.WithError(err).Error("chat: failed to persist message")
		return nil, err
	}

	s.publish(ctx, msg)

	logrus.WithFields(logrus.Fields{
		"message_id":      msg.ID,
		"question_length": len([]rune(question)),
	}).Debug("chat: message stored")

	return msg, nil
}

// Recent returns up to limit records, newest first. Limits outside
// [1, MaxRecentLimit] are rejected, not clamped.
func (s *ChatService) Recent(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if err := ValidateRecentMessages(models.RecentMessagesRequest{Limit: &limit}); err != nil {
		return nil, err
	}

	messages, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		logrus.WithError(err).WithField("limit", limit).Error("chat: failed to list recent messages")
		return nil, err
	}
	return messages, nil
}

func (s *ChatService) publish(ctx context.Context, msg *models.ChatMessage) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishMessage(ctx, msg); err != nil {
		logrus.WithError(err).WithField("message_id", msg.ID).Warn("chat: failed to publish message")
	}
}
