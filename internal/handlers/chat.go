package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/services"
)

type ChatHandler struct {
	geminiService *services.GeminiService
}

func NewChatHandler(geminiService *services.GeminiService) *ChatHandler {
	return &ChatHandler{geminiService: geminiService}
}

// Chat relays a conversation to the Gemini API. The messages array must be
// non-empty and end with a user message; both are rejected before any
// upstream call is made.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if len(req.Messages) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Messages array must not be empty", r))
		return
	}

	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "The last message must be a user message", r))
		return
	}
	if strings.TrimSpace(last.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "The last message must not be empty", r))
		return
	}

	text, modelUsed, err := h.geminiService.Chat(r.Context(), req.Model, req.Messages)
	if err != nil {
		writeServiceError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, models.NewChatResponse(text, modelUsed))
}
