package handlers

import (
	"net/http"
	"runtime"
	"time"

	"gemini-chat-backend/internal/models"
)

type StatusHandler struct {
	available *models.AvailableModels
	apiKeySet bool
	env       string
	startedAt time.Time
}

func NewStatusHandler(available *models.AvailableModels, apiKeySet bool, env string) *StatusHandler {
	return &StatusHandler{
		available: available,
		apiKeySet: apiKeySet,
		env:       env,
		startedAt: time.Now(),
	}
}

// Test is the connectivity check the UI polls on load.
func (h *StatusHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "ok",
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"apiKeySet":       h.apiKeySet,
		"availableModels": h.available,
	})
}

// Diagnostics exposes runtime metadata plus the discovery result.
func (h *StatusHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"goVersion":       runtime.Version(),
		"numGoroutine":    runtime.NumGoroutine(),
		"allocBytes":      mem.Alloc,
		"env":             h.env,
		"uptimeSeconds":   int(time.Since(h.startedAt).Seconds()),
		"apiKeySet":       h.apiKeySet,
		"availableModels": h.available,
	})
}
