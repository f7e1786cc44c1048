package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/middleware"
	"chatbot-backend/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	viewHandler *handlers.ViewHandler,
	wsHub *websocket.Hub,
	askLimiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/health", chatHandler.Healthcheck)

	// ──── Chat page (htmx) ────
	r.Get("/", viewHandler.Index)
	r.With(askLimiter.Limit("page", http.HandlerFunc(viewHandler.RateLimited))).Post("/view/ask", viewHandler.Ask)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", chatHandler.Healthcheck)

		r.With(askLimiter.Middleware).Post("/askQuestion", chatHandler.AskQuestion)

		r.Get("/getRecentMessages", chatHandler.GetRecentMessages)
		r.Post("/getRecentMessages", chatHandler.GetRecentMessages)

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}
