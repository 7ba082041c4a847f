package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minjoonc/portfolio-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, feedback *handlers.FeedbackHandler, health *handlers.HealthHandler, chat *handlers.ChatHandler) {
	// Feedback routes
	r.Get("/api/feedback", feedback.List)
	r.Post("/api/feedback", feedback.Submit)
	r.Delete("/api/feedback/{id}", feedback.Delete)

	// Health check
	r.Get("/api/health", health.Check)

	// WebSocket endpoint for realtime chat
	r.Get("/ws/chat", chat.ServeWS)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Not found"}`))
	})
}
