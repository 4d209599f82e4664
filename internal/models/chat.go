package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. Model is optional;
// the discovered text model is used when it is empty.
type ChatRequest struct {
	Model    string        `json:"model,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// ContentBlock is one block of a chat reply. Type is always "text".
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatResponse is the reply from the relay, mirroring the shape the UI expects.
type ChatResponse struct {
	Content []ContentBlock `json:"content"`
	Model   string         `json:"model"`
}

// NewChatResponse wraps generated text in the single-block response shape.
func NewChatResponse(text, model string) ChatResponse {
	return ChatResponse{
		Content: []ContentBlock{{Type: "text", Text: text}},
		Model:   model,
	}
}
