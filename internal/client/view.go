package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"chatbot-backend/internal/models"
)

// DefaultSeedLimit is how many recent messages a view loads on start.
const DefaultSeedLimit = 20

// ErrSubmitInFlight is returned when Submit is called while an earlier
// question is still waiting for its answer.
var ErrSubmitInFlight = errors.New("a question is already being answered")

type chatAPI interface {
	AskQuestion(ctx context.Context, question string) (*models.ChatMessage, error)
	GetRecentMessages(ctx context.Context, limit int) ([]*models.ChatMessage, error)
}

// ChatView holds the state of one chat screen: the displayed messages, the
// current error banner and whether a submit is pending. It is safe for
// concurrent use.
type ChatView struct {
	api       chatAPI
	seedLimit int

	mu       sync.Mutex
	messages []*models.ChatMessage
	errMsg   string
	inFlight bool
}

func NewChatView(api chatAPI, seedLimit int) *ChatView {
	if seedLimit <= 0 {
		seedLimit = DefaultSeedLimit
	}
	return &ChatView{api: api, seedLimit: seedLimit}
}

// Seed replaces the displayed list with the most recent messages, in the
// order the server returns them. On failure the list is left as it was and
// no banner is shown.
func (v *ChatView) Seed(ctx context.Context) error {
	messages, err := v.api.GetRecentMessages(ctx, v.seedLimit)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = messages
	return nil
}

// Submit asks the trimmed input and appends the answer at the end of the
// list. Blank input is ignored and returns (nil, nil). Any failure sets the
// generic error banner and leaves the list untouched.
func (v *ChatView) Submit(ctx context.Context, input string) (*models.ChatMessage, error) {
	question := strings.TrimSpace(input)
	if question == "" {
		return nil, nil
	}

	v.mu.Lock()
	if v.inFlight {
		v.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	v.inFlight = true
	v.errMsg = ""
	v.mu.Unlock()

	msg, err := v.api.AskQuestion(ctx, question)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
	if err != nil {
		v.errMsg = models.AskFailedMessage
		return nil, err
	}
	v.messages = append(v.messages, msg)
	return msg, nil
}

// Messages returns a copy of the displayed list.
func (v *ChatView) Messages() []*models.ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]*models.ChatMessage, len(v.messages))
	copy(out, v.messages)
	return out
}

// Err returns the error banner text, empty when there is none.
func (v *ChatView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}

// InFlight reports whether submitting is currently disabled.
func (v *ChatView) InFlight() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inFlight
}
