// Package analytics accumulates conversation usage statistics: message and
// character counters, per-day buckets, estimated token usage, and response
// time samples. The record is written back to its store after every mutation
// and restored at startup.
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/storage"
)

// tokensPerChar is a fixed heuristic constant, not a real tokenizer. Kept
// as-is for continuity with previously exported reports.
const tokensPerChar = 0.25

// maxResponseTimeSamples bounds the history. Trimmed samples are subtracted
// from the running total so the average stays consistent with the history.
const maxResponseTimeSamples = 100

const dayFormat = "2006-01-02"

type Aggregator struct {
	mu    sync.Mutex
	stats *models.ConversationStats
	store storage.Store
}

// NewAggregator restores stats from the store, falling back to a zeroed
// record when the key is absent or the payload does not parse.
func NewAggregator(ctx context.Context, store storage.Store) *Aggregator {
	a := &Aggregator{store: store, stats: models.NewConversationStats()}

	raw, err := store.Get(ctx, storage.StatsKey)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Printf("Failed to load stats, starting fresh: %v", err)
		}
		return a
	}

	var loaded models.ConversationStats
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		log.Printf("Stored stats are corrupt, starting fresh: %v", err)
		return a
	}
	if loaded.DailyMessages == nil {
		loaded.DailyMessages = make(map[string]*models.DayCount)
	}
	if loaded.ResponseTimeHistory == nil {
		loaded.ResponseTimeHistory = []models.ResponseTimeSample{}
	}
	a.stats = &loaded
	return a
}

// RecordUserMessage tracks an outgoing user message and stamps the pending
// round-trip timer. A second user message before the AI response overwrites
// the timer, so the first round trip is never sampled.
func (a *Aggregator) RecordUserMessage(ctx context.Context, text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	a.stats.UserMessages++
	a.stats.TotalMessages++
	a.stats.UserChars += len(text)
	a.stats.TokensUsed.Input += estimateTokens(text)
	a.stats.TokensUsed.Total = a.stats.TokensUsed.Input + a.stats.TokensUsed.Output
	a.dayBucket(now).User++
	a.stats.LastQueryTime = &now

	a.persist(ctx)
}

// RecordAIResponse tracks an incoming AI message. When a round-trip timer is
// pending it contributes one response-time sample; otherwise timing is
// silently skipped.
func (a *Aggregator) RecordAIResponse(ctx context.Context, text string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	a.stats.AIMessages++
	a.stats.TotalMessages++
	a.stats.AIChars += len(text)
	a.stats.TokensUsed.Output += estimateTokens(text)
	a.stats.TokensUsed.Total = a.stats.TokensUsed.Input + a.stats.TokensUsed.Output
	a.dayBucket(now).AI++

	if a.stats.LastQueryTime != nil {
		duration := now.Sub(*a.stats.LastQueryTime).Seconds()
		a.stats.ResponseTimeHistory = append(a.stats.ResponseTimeHistory,
			models.ResponseTimeSample{Timestamp: now, Duration: duration})
		a.stats.TotalResponseTime += duration

		if excess := len(a.stats.ResponseTimeHistory) - maxResponseTimeSamples; excess > 0 {
			for _, trimmed := range a.stats.ResponseTimeHistory[:excess] {
				a.stats.TotalResponseTime -= trimmed.Duration
			}
			a.stats.ResponseTimeHistory = a.stats.ResponseTimeHistory[excess:]
		}

		a.stats.AvgResponseTime = a.stats.TotalResponseTime / float64(len(a.stats.ResponseTimeHistory))
		a.stats.LastQueryTime = nil
	}

	a.persist(ctx)
}

// RecordImageUpload tracks one accepted image upload.
func (a *Aggregator) RecordImageUpload(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.ImagesUploaded++
	a.persist(ctx)
}

// Reset zeroes every counter and persists the empty record.
func (a *Aggregator) Reset(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats = models.NewConversationStats()
	a.persist(ctx)
}

// Snapshot returns a deep copy safe to serialize outside the lock.
func (a *Aggregator) Snapshot() models.ConversationStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	snap := *a.stats
	snap.DailyMessages = make(map[string]*models.DayCount, len(a.stats.DailyMessages))
	for day, count := range a.stats.DailyMessages {
		c := *count
		snap.DailyMessages[day] = &c
	}
	snap.ResponseTimeHistory = append([]models.ResponseTimeSample{}, a.stats.ResponseTimeHistory...)
	snap.LastQueryTime = nil
	return snap
}

func (a *Aggregator) dayBucket(now time.Time) *models.DayCount {
	day := now.Format(dayFormat)
	bucket, ok := a.stats.DailyMessages[day]
	if !ok {
		bucket = &models.DayCount{}
		a.stats.DailyMessages[day] = bucket
	}
	return bucket
}

// persist writes the record back under its fixed key. Called with the lock
// held. Failures are logged, never surfaced: analytics must not break chat.
func (a *Aggregator) persist(ctx context.Context) {
	data, err := json.Marshal(a.stats)
	if err != nil {
		log.Printf("Failed to serialize stats: %v", err)
		return
	}
	if err := a.store.Set(ctx, storage.StatsKey, string(data)); err != nil {
		log.Printf("Failed to persist stats: %v", err)
	}
}

func estimateTokens(text string) int {
	return int(math.Ceil(float64(len(text)) * tokensPerChar))
}
