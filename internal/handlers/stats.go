package handlers

import (
	"encoding/json"
	"net/http"

	"gemini-chat-backend/internal/analytics"
	"gemini-chat-backend/internal/storage"
)

type StatsHandler struct {
	aggregator *analytics.Aggregator
	store      storage.Store
}

func NewStatsHandler(aggregator *analytics.Aggregator, store storage.Store) *StatsHandler {
	return &StatsHandler{aggregator: aggregator, store: store}
}

// Get returns the current aggregate stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.aggregator.Snapshot())
}

// RecordUserMessage tracks one sent user message and starts the round-trip timer.
func (h *StatsHandler) RecordUserMessage(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	h.aggregator.RecordUserMessage(r.Context(), text)
	writeJSON(w, http.StatusOK, h.aggregator.Snapshot())
}

// RecordAIResponse tracks one received AI message, closing the round-trip
// timer when one is pending.
func (h *StatsHandler) RecordAIResponse(w http.ResponseWriter, r *http.Request) {
	text, ok := h.decodeText(w, r)
	if !ok {
		return
	}
	h.aggregator.RecordAIResponse(r.Context(), text)
	writeJSON(w, http.StatusOK, h.aggregator.Snapshot())
}

// Reset zeroes all counters.
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.aggregator.Reset(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Statistics reset"})
}

// Export streams the three-section CSV report.
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="conversation-stats.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.aggregator.ExportCSV()))
}

// GetTheme returns the persisted theme preference, defaulting to dark.
func (h *StatsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.store.Get(r.Context(), storage.ThemeKey)
	if err != nil {
		theme = "dark"
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

// SetTheme persists the theme preference under its fixed key.
func (h *StatsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Theme != "dark" && req.Theme != "light" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", `Theme must be "dark" or "light"`, r))
		return
	}

	if err := h.store.Set(r.Context(), storage.ThemeKey, req.Theme); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("STORAGE_ERROR", "Failed to persist theme", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}

func (h *StatsHandler) decodeText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return "", false
	}
	return req.Text, true
}
