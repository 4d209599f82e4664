package services

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/scoring"
)

// fallbackCatalog is the fixed candidate list probed when model listing is
// unsupported or empty. Vision-named candidates come first.
var fallbackCatalog = []string{
	"gemini-pro-vision",
	"gemini-1.5-pro-vision",
	"gemini-2.0-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-pro",
}

// probePNG is a 1x1 PNG used for the optional multimodal capability probe.
var probePNG, _ = base64.StdEncoding.DecodeString(
	"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")

// Discover resolves the best available text and vision models. It tries the
// model listing endpoint first and falls back to probing a fixed candidate
// catalog one at a time. Individual probe failures are expected and skipped;
// Discover only reports overall failure when no model at all was found.
func (s *GeminiService) Discover(ctx context.Context) bool {
	names, err := s.listModels(ctx)
	if err != nil {
		log.Printf("Model listing failed, falling back to candidate probing: %v", err)
	} else if len(names) == 0 {
		log.Println("Model listing returned no usable models, falling back to candidate probing")
	} else {
		s.available = SelectFromList(names)
		log.Printf("Discovered %d models via listing (text=%q vision=%q)",
			len(names), s.available.Text, s.available.Vision)
		return s.available.HasText() || s.available.HasVision()
	}

	s.available = s.probeCatalog(ctx)
	log.Printf("Fallback probing found %d models (text=%q vision=%q)",
		len(s.available.AllModels), s.available.Text, s.available.Vision)
	return s.available.HasText() || s.available.HasVision()
}

// listModels queries the Gemini listing endpoint and keeps gemini models that
// support content generation.
func (s *GeminiService) listModels(ctx context.Context) ([]string, error) {
	var names []string
	it := s.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		name := strings.TrimPrefix(m.Name, "models/")
		if !strings.HasPrefix(name, "gemini") {
			continue
		}
		if !supportsGeneration(m.SupportedGenerationMethods) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func supportsGeneration(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}

// SelectFromList classifies a known model list and picks the best text and
// vision model. Vision detection on this path is name-based only: listed
// models are never re-probed for hidden vision support. The text model comes
// from the non-vision subset when one exists, so a vision model's large score
// bonus cannot crowd out a proper text model.
func SelectFromList(names []string) *models.AvailableModels {
	available := &models.AvailableModels{AllModels: names}

	var textCandidates []string
	for _, name := range names {
		if scoring.IsVisionName(name) {
			if available.Vision == "" || scoring.IsBetterModel(name, available.Vision) {
				available.Vision = name
			}
		} else {
			textCandidates = append(textCandidates, name)
		}
	}

	if len(textCandidates) == 0 {
		textCandidates = names
	}
	for _, name := range textCandidates {
		if available.Text == "" || scoring.IsBetterModel(name, available.Text) {
			available.Text = name
		}
	}

	return available
}

// probeCatalog walks the fallback catalog, keeping every candidate that
// answers a minimal liveness request. Candidates not already vision-named get
// one multimodal probe to detect undocumented vision support. Selections are
// updated incrementally so the result matches scoring the whole survivor set.
func (s *GeminiService) probeCatalog(ctx context.Context) *models.AvailableModels {
	available := &models.AvailableModels{AllModels: []string{}}

	for _, candidate := range fallbackCatalog {
		if !s.probeText(ctx, candidate) {
			log.Printf("Model %q is not available, skipping", candidate)
			continue
		}

		available.AllModels = append(available.AllModels, candidate)

		vision := scoring.IsVisionName(candidate)
		if !vision && s.probeVision(ctx, candidate) {
			log.Printf("Model %q passed the multimodal probe, treating as vision-capable", candidate)
			vision = true
		}

		if available.Text == "" || scoring.IsBetterModel(candidate, available.Text) {
			available.Text = candidate
		}
		if vision && (available.Vision == "" || scoring.IsBetterModel(candidate, available.Vision)) {
			available.Vision = candidate
		}
	}

	return available
}

// probeText issues a minimal text request to check a candidate is usable.
func (s *GeminiService) probeText(ctx context.Context, name string) bool {
	model := s.client.GenerativeModel(name)
	resp, err := model.GenerateContent(ctx, genai.Text("Hi"))
	if err != nil {
		observeUpstream("probe", "error")
		return false
	}
	observeUpstream("probe", "ok")
	return strings.TrimSpace(extractText(resp)) != ""
}

// probeVision tests undocumented vision support with a tiny embedded image.
func (s *GeminiService) probeVision(ctx context.Context, name string) bool {
	model := s.client.GenerativeModel(name)
	resp, err := model.GenerateContent(ctx,
		genai.Text(DefaultImagePrompt),
		genai.ImageData("png", probePNG),
	)
	if err != nil {
		observeUpstream("probe", "error")
		return false
	}
	observeUpstream("probe", "ok")
	return strings.TrimSpace(extractText(resp)) != ""
}
