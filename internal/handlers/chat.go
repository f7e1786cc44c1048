package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"chatbot-backend/internal/models"
	"chatbot-backend/internal/services"
)

type chatService interface {
	Ask(ctx context.Context, question string) (*models.ChatMessage, error)
	Recent(ctx context.Context, limit int) ([]*models.ChatMessage, error)
}

type ChatHandler struct {
	chatService chatService
	now         func() time.Time
}

func NewChatHandler(chatService chatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		now:         time.Now,
	}
}

// Healthcheck has no dependencies and succeeds while the process is up.
func (h *ChatHandler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{
		Status:    "ok",
		Timestamp: h.now().UTC(),
	})
}

// AskQuestion stores one question/answer pair per call; retries create
// duplicates.
func (h *ChatHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.AskQuestionRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := services.ValidateAskQuestion(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	msg, err := h.chatService.Ask(r.Context(), req.Question)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

// GetRecentMessages accepts the limit as a query parameter or, for POST, as
// an optional JSON body {"limit": n}.
func (h *ChatHandler) GetRecentMessages(w http.ResponseWriter, r *http.Request) {
	var req models.RecentMessagesRequest

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			handleServiceError(w, r, services.NewValidationError("limit", "Limit must be an integer between 1 and 100"))
			return
		}
		req.Limit = &n
	} else if r.Method == http.MethodPost {
		if err := decodeJSONBody(w, r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
			return
		}
	}

	if err := services.ValidateRecentMessages(req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	messages, err := h.chatService.Recent(r.Context(), services.ResolveLimit(req))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}
