package services

import (
	"net/http"
	"strings"
)

// ServiceError is a classified relay failure carrying the HTTP status the
// handler should surface.
type ServiceError struct {
	Kind    string
	Message string
	Status  int
}

func (e *ServiceError) Error() string { return e.Message }

// StatusCode exposes the HTTP status for the handler layer.
func (e *ServiceError) StatusCode() int { return e.Status }

// Error taxonomy. Each kind maps to one externally visible status.
var (
	ErrNoModelAvailable = &ServiceError{
		Kind:    "NO_MODEL_AVAILABLE",
		Message: "No text model is available. Model discovery found no usable models.",
		Status:  http.StatusServiceUnavailable,
	}
	ErrNoVisionModelAvailable = &ServiceError{
		Kind:    "NO_VISION_MODEL_AVAILABLE",
		Message: "No vision model is available. Image analysis is disabled.",
		Status:  http.StatusServiceUnavailable,
	}
	ErrInvalidCredentials = &ServiceError{
		Kind:    "INVALID_CREDENTIALS",
		Message: "The configured API key was rejected by the Gemini API.",
		Status:  http.StatusUnauthorized,
	}
	ErrModelNotFound = &ServiceError{
		Kind:    "MODEL_NOT_FOUND",
		Message: "The requested model does not exist or is not accessible.",
		Status:  http.StatusNotFound,
	}
	ErrQuotaExceeded = &ServiceError{
		Kind:    "QUOTA_EXCEEDED",
		Message: "API quota exceeded. Try again later.",
		Status:  http.StatusTooManyRequests,
	}
	ErrEmptyResponse = &ServiceError{
		Kind:    "EMPTY_RESPONSE",
		Message: "The model returned an empty response.",
		Status:  http.StatusInternalServerError,
	}
	ErrContentSafetyBlocked = &ServiceError{
		Kind:    "CONTENT_SAFETY_BLOCKED",
		Message: "The request was blocked by content safety filters.",
		Status:  http.StatusBadRequest,
	}
	ErrPayloadTooLarge = &ServiceError{
		Kind:    "PAYLOAD_TOO_LARGE",
		Message: "Image exceeds the maximum allowed size.",
		Status:  http.StatusRequestEntityTooLarge,
	}
	ErrUnsupportedFormat = &ServiceError{
		Kind:    "UNSUPPORTED_FORMAT",
		Message: "Uploaded file is not a supported image type.",
		Status:  http.StatusUnsupportedMediaType,
	}
	ErrGenericUpstream = &ServiceError{
		Kind:    "UPSTREAM_ERROR",
		Message: "The Gemini API returned an unexpected error.",
		Status:  http.StatusInternalServerError,
	}
)

// classifyUpstreamError maps an arbitrary Gemini SDK error onto the nearest
// taxonomy kind by matching its description. Unclassified errors fall through
// to the generic 500.
func classifyUpstreamError(err error) *ServiceError {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "api key not valid"),
		strings.Contains(msg, "api_key_invalid"),
		strings.Contains(msg, "permission_denied"),
		strings.Contains(msg, "unauthenticated"):
		return ErrInvalidCredentials
	case strings.Contains(msg, "not found"),
		strings.Contains(msg, "404"):
		return ErrModelNotFound
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "429"):
		return ErrQuotaExceeded
	case strings.Contains(msg, "safety"),
		strings.Contains(msg, "blocked"):
		return ErrContentSafetyBlocked
	default:
		return ErrGenericUpstream
	}
}
