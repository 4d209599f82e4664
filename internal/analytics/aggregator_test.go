package analytics

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"time"

	"gemini-chat-backend/internal/models"
	"gemini-chat-backend/internal/storage"
)

func newTestAggregator(t *testing.T) (*Aggregator, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return NewAggregator(context.Background(), store), store
}

func TestRecordUserThenAI(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "hello")
	a.RecordAIResponse(ctx, "hi there")

	stats := a.Snapshot()

	if stats.TotalMessages != 2 {
		t.Errorf("Expected 2 total messages, got %d", stats.TotalMessages)
	}
	if stats.UserMessages != 1 || stats.AIMessages != 1 {
		t.Errorf("Expected 1 user + 1 AI, got %d + %d", stats.UserMessages, stats.AIMessages)
	}
	if len(stats.ResponseTimeHistory) != 1 {
		t.Fatalf("Expected exactly one response time sample, got %d", len(stats.ResponseTimeHistory))
	}
	if stats.ResponseTimeHistory[0].Duration < 0 {
		t.Errorf("Duration must be non-negative, got %f", stats.ResponseTimeHistory[0].Duration)
	}
}

func TestRecordAIResponseWithoutPendingQuery(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "question")
	a.RecordAIResponse(ctx, "first answer")
	// Second AI response in a row: the pending timer was cleared, so no
	// second sample may be recorded.
	a.RecordAIResponse(ctx, "second answer")

	stats := a.Snapshot()
	if len(stats.ResponseTimeHistory) != 1 {
		t.Errorf("Expected at most one duration sample, got %d", len(stats.ResponseTimeHistory))
	}
	if stats.AIMessages != 2 {
		t.Errorf("Both AI messages should still be counted, got %d", stats.AIMessages)
	}
}

func TestSecondUserMessageOverwritesPendingTimer(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "first")
	a.RecordUserMessage(ctx, "second")
	a.RecordAIResponse(ctx, "answer")

	// Single-slot timer: the first round trip is discarded, only one
	// sample exists.
	stats := a.Snapshot()
	if len(stats.ResponseTimeHistory) != 1 {
		t.Errorf("Expected one sample from the second timer, got %d", len(stats.ResponseTimeHistory))
	}
}

func TestTokenEstimate(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"", 0},
		{"a", 1},         // ceil(0.25)
		{"abcd", 1},      // ceil(1.0)
		{"abcde", 2},     // ceil(1.25)
		{"hello world", 3},
	}

	for _, tc := range tests {
		if got := estimateTokens(tc.text); got != tc.expected {
			t.Errorf("estimateTokens(%q) = %d, expected %d", tc.text, got, tc.expected)
		}
	}
}

func TestTokensAccumulate(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "hello")    // 5 chars -> 2 tokens
	a.RecordAIResponse(ctx, "hi there")  // 8 chars -> 2 tokens

	stats := a.Snapshot()
	if stats.TokensUsed.Input != 2 {
		t.Errorf("Expected 2 input tokens, got %d", stats.TokensUsed.Input)
	}
	if stats.TokensUsed.Output != 2 {
		t.Errorf("Expected 2 output tokens, got %d", stats.TokensUsed.Output)
	}
	if stats.TokensUsed.Total != stats.TokensUsed.Input+stats.TokensUsed.Output {
		t.Error("Total tokens must equal input + output")
	}
}

func TestDailyBuckets(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "hi")
	a.RecordAIResponse(ctx, "hello")

	stats := a.Snapshot()
	today := time.Now().Format(dayFormat)
	bucket, ok := stats.DailyMessages[today]
	if !ok {
		t.Fatalf("Expected a bucket for today (%s)", today)
	}
	if bucket.User != 1 || bucket.AI != 1 {
		t.Errorf("Expected today's bucket {1,1}, got {%d,%d}", bucket.User, bucket.AI)
	}
}

func TestAverageMatchesHistory(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		a.RecordUserMessage(ctx, "q")
		a.RecordAIResponse(ctx, "a")
	}

	stats := a.Snapshot()
	if len(stats.ResponseTimeHistory) == 0 {
		t.Fatal("Expected response time samples")
	}
	expected := stats.TotalResponseTime / float64(len(stats.ResponseTimeHistory))
	if stats.AvgResponseTime != expected {
		t.Errorf("avg %f does not equal total/count %f", stats.AvgResponseTime, expected)
	}
}

func TestHistoryBounded(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	for i := 0; i < maxResponseTimeSamples+10; i++ {
		a.RecordUserMessage(ctx, "q")
		a.RecordAIResponse(ctx, "a")
	}

	stats := a.Snapshot()
	if len(stats.ResponseTimeHistory) != maxResponseTimeSamples {
		t.Errorf("Expected history capped at %d, got %d", maxResponseTimeSamples, len(stats.ResponseTimeHistory))
	}
	expected := stats.TotalResponseTime / float64(len(stats.ResponseTimeHistory))
	if diff := stats.AvgResponseTime - expected; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("avg invariant broken after trimming: %f vs %f", stats.AvgResponseTime, expected)
	}
}

func TestImageUploadCount(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordImageUpload(ctx)
	a.RecordImageUpload(ctx)

	if got := a.Snapshot().ImagesUploaded; got != 2 {
		t.Errorf("Expected 2 image uploads, got %d", got)
	}
}

func TestReset(t *testing.T) {
	a, store := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "hello")
	a.Reset(ctx)

	stats := a.Snapshot()
	if stats.TotalMessages != 0 || stats.UserMessages != 0 {
		t.Error("Reset should zero all counters")
	}

	// The zeroed record must be persisted too.
	raw, err := store.Get(ctx, storage.StatsKey)
	if err != nil {
		t.Fatalf("Expected persisted record after reset: %v", err)
	}
	var persisted models.ConversationStats
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("Persisted record does not parse: %v", err)
	}
	if persisted.TotalMessages != 0 {
		t.Error("Persisted record should be zeroed after reset")
	}
}

func TestPersistAndRestore(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	a := NewAggregator(ctx, store)
	a.RecordUserMessage(ctx, "hello")
	a.RecordAIResponse(ctx, "hi")

	// A fresh aggregator over the same store restores the record.
	restored := NewAggregator(ctx, store)
	stats := restored.Snapshot()
	if stats.TotalMessages != 2 {
		t.Errorf("Expected restored total of 2, got %d", stats.TotalMessages)
	}
}

func TestCorruptStoredStatsFallsBackToZero(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	store.Set(ctx, storage.StatsKey, "{not json")

	a := NewAggregator(ctx, store)
	if a.Snapshot().TotalMessages != 0 {
		t.Error("Corrupt data should fall back to zeroed defaults")
	}
}

func TestExportCSV_Layout(t *testing.T) {
	a, _ := newTestAggregator(t)
	ctx := context.Background()

	a.RecordUserMessage(ctx, "hello")
	a.RecordAIResponse(ctx, "hi there")
	a.RecordImageUpload(ctx)

	report := a.ExportCSV()

	for _, section := range []string{
		"Summary Statistics",
		"Daily Message History",
		"Date,User,AI,Total",
		"Response Time History",
		"Timestamp,Duration",
	} {
		if !strings.Contains(report, section) {
			t.Errorf("Report missing %q", section)
		}
	}

	// The summary total must equal userMessages + aiMessages at export time.
	stats := a.Snapshot()
	want := "Total Messages," + strconv.Itoa(stats.UserMessages+stats.AIMessages)
	if !strings.Contains(report, want) {
		t.Errorf("Report missing %q", want)
	}
}
