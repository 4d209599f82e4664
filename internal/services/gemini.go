package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"gemini-chat-backend/internal/models"
)

// DefaultImagePrompt is used when the caller's image-analysis prompt is empty.
const DefaultImagePrompt = "What's in this image?"

type GeminiService struct {
	client    *genai.Client
	available *models.AvailableModels
}

func NewGeminiService(apiKey string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		available: &models.AvailableModels{AllModels: []string{}},
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// Available returns the discovery result. Populated once by Discover before
// the server accepts traffic, read-only afterwards.
func (s *GeminiService) Available() *models.AvailableModels {
	return s.available
}

// Chat relays a conversation to the Gemini API. The last message must be a
// user message (validated by the handler); all prior messages become chat
// history with roles translated to the API vocabulary. Returns the generated
// text and the model identifier actually used.
func (s *GeminiService) Chat(ctx context.Context, requestedModel string, messages []models.ChatMessage) (string, string, error) {
	if len(messages) == 0 {
		return "", "", fmt.Errorf("messages must not be empty")
	}

	modelName := requestedModel
	if modelName == "" {
		modelName = s.available.Text
	}
	if modelName == "" {
		observeUpstream("chat", "no_model")
		return "", "", ErrNoModelAvailable
	}

	model := s.client.GenerativeModel(modelName)
	cs := model.StartChat()

	// All but the final user message become history.
	for _, msg := range messages[:len(messages)-1] {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	last := messages[len(messages)-1]
	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		observeUpstream("chat", "error")
		return "", "", classifyUpstreamError(err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		observeUpstream("chat", "empty")
		return "", "", ErrEmptyResponse
	}

	observeUpstream("chat", "ok")
	return text, modelName, nil
}

// AnalyzeImage submits an inline image plus a prompt to the vision model.
// A blank upstream result is retried exactly once with the image and prompt
// order swapped before surfacing EmptyResponse.
func (s *GeminiService) AnalyzeImage(ctx context.Context, data []byte, mimeType, prompt string) (string, string, error) {
	modelName := s.available.Vision
	if modelName == "" {
		observeUpstream("analyze_image", "no_model")
		return "", "", ErrNoVisionModelAvailable
	}

	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultImagePrompt
	}

	model := s.client.GenerativeModel(modelName)
	img := genai.ImageData(imageFormat(mimeType), data)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt), img)
	if err != nil {
		observeUpstream("analyze_image", "error")
		return "", "", classifyUpstreamError(err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		// Some models respond better with the image first.
		log.Println("Gemini returned blank image analysis, retrying with swapped part order")
		resp, err = model.GenerateContent(ctx, img, genai.Text(prompt))
		if err != nil {
			observeUpstream("analyze_image", "error")
			return "", "", classifyUpstreamError(err)
		}
		text = strings.TrimSpace(extractText(resp))
	}

	if text == "" {
		observeUpstream("analyze_image", "empty")
		return "", "", ErrEmptyResponse
	}

	observeUpstream("analyze_image", "ok")
	return text, modelName, nil
}

// imageFormat derives the genai blob format from a mimetype ("image/png" -> "png").
func imageFormat(mimeType string) string {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" {
		format = "png"
	}
	return format
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
