package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Get(ctx, StatsKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing key, got %v", err)
	}

	if err := store.Set(ctx, StatsKey, `{"totalMessages":2}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := store.Get(ctx, StatsKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != `{"totalMessages":2}` {
		t.Errorf("Unexpected value: %q", val)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, ThemeKey, "dark")
	if err := store.Delete(ctx, ThemeKey); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.Get(ctx, ThemeKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, ThemeKey, "dark")
	store.Set(ctx, ThemeKey, "light")

	val, _ := store.Get(ctx, ThemeKey)
	if val != "light" {
		t.Errorf("Expected overwritten value 'light', got %q", val)
	}
}
