package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemini-chat-backend/internal/analytics"
	"gemini-chat-backend/internal/config"
	"gemini-chat-backend/internal/handlers"
	"gemini-chat-backend/internal/router"
	"gemini-chat-backend/internal/services"
	"gemini-chat-backend/internal/storage"
)

func main() {
	log.Println("🚀 Starting Gemini Chat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Stats Store ────
	var store storage.Store
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		store = redisStore
		log.Println("✓ Redis connected")
	} else {
		store = storage.NewMemoryStore()
		log.Println("✓ In-memory stats store (set REDIS_URL to persist across restarts)")
	}
	defer store.Close()

	// ──── Step 3: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Step 4: Run Model Discovery ────
	// Discovery completes before the listener starts, so AvailableModels is
	// read-only once traffic arrives.
	discoverCtx, cancelDiscover := context.WithTimeout(context.Background(), 2*time.Minute)
	if geminiService.Discover(discoverCtx) {
		log.Printf("✓ Model discovery complete (text=%q vision=%q)",
			geminiService.Available().Text, geminiService.Available().Vision)
	} else {
		log.Println("✗ Model discovery found no usable models — chat will report service degraded")
	}
	cancelDiscover()

	// ──── Step 5: Restore Analytics ────
	aggregator := analytics.NewAggregator(context.Background(), store)
	log.Println("✓ Conversation stats restored")

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(geminiService)
	imageHandler := handlers.NewImageHandler(geminiService, aggregator, cfg.MaxImageSizeBytes())
	statusHandler := handlers.NewStatusHandler(geminiService.Available(), cfg.APIKeySet(), cfg.Env)
	statsHandler := handlers.NewStatsHandler(aggregator, store)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(chatHandler, imageHandler, statusHandler, statsHandler,
		cfg.FrontendURL, cfg.RateLimitPerMinute)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // upstream generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Gemini Chat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
