package models

import "time"

// ChatMessagesChannel is the pub/sub channel new records are fanned out on.
const ChatMessagesChannel = "chat_messages"

// AskFailedMessage is the only error text chat views show for a failed ask.
const AskFailedMessage = "Failed to get response. Please try again."

// ChatMessage is one persisted question/answer pair.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// AskQuestionRequest is the input of the askQuestion procedure.
type AskQuestionRequest struct {
	Question string `json:"question" validate:"notblank,max=1000,nonul"`
}

// RecentMessagesRequest is the input of the getRecentMessages procedure.
// A nil Limit means the caller did not send one.
type RecentMessagesRequest struct {
	Limit *int `json:"limit" validate:"omitempty,min=1,max=100"`
}

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// WSMessage is the envelope pushed to live-feed sockets.
type WSMessage struct {
	Type    string      `json:"type"` // "message_created"
	Payload interface{} `json:"payload"`
}
