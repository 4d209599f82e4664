package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	imageHandler *handlers.ImageHandler,
	statusHandler *handlers.StatusHandler,
	statsHandler *handlers.StatsHandler,
	frontendURL string,
	rateLimitPerMinute int,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{frontendURL},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	apiLimiter := middleware.NewRateLimiter(rateLimitPerMinute, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Get("/test", statusHandler.Test)
		r.Get("/diagnostics", statusHandler.Diagnostics)

		r.Post("/chat", chatHandler.Chat)
		r.Post("/analyze-image", imageHandler.Analyze)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", statsHandler.Get)
			r.Post("/user-message", statsHandler.RecordUserMessage)
			r.Post("/ai-response", statsHandler.RecordAIResponse)
			r.Post("/reset", statsHandler.Reset)
			r.Get("/export", statsHandler.Export)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/theme", statsHandler.GetTheme)
			r.Put("/theme", statsHandler.SetTheme)
		})
	})

	return r
}
