package models

// ErrorResponse is the failure payload for every API endpoint.
// Troubleshooting carries human-readable hints and is only populated by the
// image-analysis endpoint.
type ErrorResponse struct {
	Error           string   `json:"error"`
	Details         string   `json:"details,omitempty"`
	RequestID       string   `json:"requestId,omitempty"`
	Troubleshooting []string `json:"troubleshooting,omitempty"`
}
