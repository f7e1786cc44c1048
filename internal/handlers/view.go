package handlers

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	g "maragu.dev/gomponents"

	"chatbot-backend/internal/middleware"
	"chatbot-backend/internal/view"
)

// ViewHandler serves the server-rendered chat page.
type ViewHandler struct {
	chatService chatService
	seedLimit   int
}

func NewViewHandler(chatService chatService, seedLimit int) *ViewHandler {
	return &ViewHandler{chatService: chatService, seedLimit: seedLimit}
}

// Index renders the page seeded with the most recent messages. A failed seed
// still renders the page, just empty.
func (h *ViewHandler) Index(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.Recent(r.Context(), h.seedLimit)
	if err != nil {
		logrus.WithError(err).WithField("request_id", middleware.GetRequestID(r.Context())).Warn("failed to load recent messages")
		messages = nil
	}
	writeHTML(w, r, http.StatusOK, view.Page(messages))
}

// Ask handles the htmx form post. Failures are answered with 200 so htmx
// swaps in the error banner.
func (h *ViewHandler) Ask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeHTML(w, r, http.StatusOK, view.AskFailed())
		return
	}

	question := strings.TrimSpace(r.PostForm.Get("question"))
	if question == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg, err := h.chatService.Ask(r.Context(), question)
	if err != nil {
		logrus.WithError(err).WithField("request_id", middleware.GetRequestID(r.Context())).Warn("ask from chat page failed")
		writeHTML(w, r, http.StatusOK, view.AskFailed())
		return
	}

	writeHTML(w, r, http.StatusOK, view.AskSucceeded(msg))
}

// RateLimited answers a throttled form post with the error banner. The status
// stays 200 because htmx does not swap error responses.
func (h *ViewHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	logrus.WithField("request_id", middleware.GetRequestID(r.Context())).Warn("ask from chat page rate limited")
	writeHTML(w, r, http.StatusOK, view.AskFailed())
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, n g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := n.Render(w); err != nil {
		logrus.WithError(err).WithField("request_id", middleware.GetRequestID(r.Context())).Error("failed to render view")
	}
}
