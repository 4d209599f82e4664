package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message, details string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		Details:   details,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

// writeServiceError maps a relay failure onto its HTTP status. Unclassified
// errors become a plain 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, troubleshooting []string) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		resp := errorResp(svcErr.Kind, svcErr.Message, r)
		resp.Troubleshooting = troubleshooting
		writeJSON(w, svcErr.StatusCode(), resp)
		return
	}

	resp := errorResp("INTERNAL_ERROR", err.Error(), r)
	resp.Troubleshooting = troubleshooting
	writeJSON(w, http.StatusInternalServerError, resp)
}
