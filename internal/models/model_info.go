package models

// ModelInfo describes one discovered model and its inferred capabilities.
type ModelInfo struct {
	Name           string `json:"name"`
	SupportsText   bool   `json:"supportsText"`
	SupportsVision bool   `json:"supportsVision"`
}

// AvailableModels is the process-wide result of model discovery. It is
// populated once before the server starts accepting traffic and is read-only
// afterwards, so handlers may read it without synchronization.
type AvailableModels struct {
	Text      string   `json:"text"`
	Vision    string   `json:"vision"`
	AllModels []string `json:"allModels"`
}

// HasText reports whether a usable text model was discovered.
func (m *AvailableModels) HasText() bool { return m.Text != "" }

// HasVision reports whether a usable vision model was discovered.
func (m *AvailableModels) HasVision() bool { return m.Vision != "" }
