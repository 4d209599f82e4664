package handlers

import (
	"io"
	"net/http"
	"strings"

	"gemini-chat-backend/internal/analytics"
	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/services"
)

// imageTroubleshooting is returned with every image-analysis failure.
var imageTroubleshooting = []string{
	"Make sure the file is a valid image (PNG, JPEG, WebP, HEIC or GIF)",
	"Images must be smaller than the configured size limit (5MB by default)",
	"Check that your API key has access to a vision-capable model",
	"Try a smaller image or a different format",
}

type ImageHandler struct {
	geminiService *services.GeminiService
	aggregator    *analytics.Aggregator
	maxBytes      int64
}

func NewImageHandler(geminiService *services.GeminiService, aggregator *analytics.Aggregator, maxBytes int64) *ImageHandler {
	return &ImageHandler{
		geminiService: geminiService,
		aggregator:    aggregator,
		maxBytes:      maxBytes,
	}
}

// Analyze accepts a multipart upload with an "image" file field and an
// optional "prompt" text field. Non-image payloads and oversized files are
// rejected before any upstream call is made.
func (h *ImageHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20) // slack for the prompt field

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.writeImageError(w, r, services.ErrPayloadTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		resp := errorResp("VALIDATION_ERROR", "Missing image file field", r)
		resp.Troubleshooting = imageTroubleshooting
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(mimeType), "image/") {
		h.writeImageError(w, r, services.ErrUnsupportedFormat)
		return
	}
	if header.Size > h.maxBytes {
		h.writeImageError(w, r, services.ErrPayloadTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		resp := errorResp("UPLOAD_ERROR", "Failed to read uploaded image", r)
		resp.Troubleshooting = imageTroubleshooting
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	h.aggregator.RecordImageUpload(r.Context())

	prompt := r.FormValue("prompt")
	text, modelUsed, err := h.geminiService.AnalyzeImage(r.Context(), data, mimeType, prompt)
	if err != nil {
		h.writeImageError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.NewChatResponse(text, modelUsed))
}

func (h *ImageHandler) writeImageError(w http.ResponseWriter, r *http.Request, err error) {
	writeServiceError(w, r, err, imageTroubleshooting)
}
