package models

import "time"

// DayCount holds per-day message totals for one calendar date.
type DayCount struct {
	User int `json:"user"`
	AI   int `json:"ai"`
}

// TokenUsage holds estimated token consumption. The estimates come from a
// fixed characters-to-tokens heuristic, not a real tokenizer.
type TokenUsage struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// ResponseTimeSample is one measured user-query-to-AI-response round trip.
type ResponseTimeSample struct {
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"` // seconds
}

// ConversationStats is the aggregate usage record, persisted as a single
// serialized blob under a fixed storage key.
//
// Invariants: TotalMessages == UserMessages + AIMessages, and
// AvgResponseTime == TotalResponseTime / len(ResponseTimeHistory) whenever
// the history is non-empty.
type ConversationStats struct {
	TotalMessages       int                  `json:"totalMessages"`
	UserMessages        int                  `json:"userMessages"`
	AIMessages          int                  `json:"aiMessages"`
	TotalResponseTime   float64              `json:"totalResponseTime"` // seconds
	AvgResponseTime     float64              `json:"avgResponseTime"`   // seconds
	DailyMessages       map[string]*DayCount `json:"dailyMessages"`     // "2006-01-02" keys
	TokensUsed          TokenUsage           `json:"tokensUsed"`
	ImagesUploaded      int                  `json:"imagesUploaded"`
	UserChars           int                  `json:"userChars"`
	AIChars             int                  `json:"aiChars"`
	ResponseTimeHistory []ResponseTimeSample `json:"responseTimeHistory"`

	// LastQueryTime measures the single in-flight round trip. It is a
	// one-slot pending timer: a second user message before the AI response
	// overwrites it, discarding the first round trip's timing.
	LastQueryTime *time.Time `json:"-"`
}

// NewConversationStats returns a zeroed record with initialized maps.
func NewConversationStats() *ConversationStats {
	return &ConversationStats{
		DailyMessages:       make(map[string]*DayCount),
		ResponseTimeHistory: []ResponseTimeSample{},
	}
}
