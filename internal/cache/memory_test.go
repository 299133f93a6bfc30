package cache

import (
	"context"
	"testing"
	"time"
)

// TestMemoryStoreSetGet checks basic hit and miss behavior.
func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	if _, ok := store.Get(ctx, "missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := store.Set(ctx, "key", "value"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	value, ok := store.Get(ctx, "key")
	if !ok || value != "value" {
		t.Fatalf("expected value, got %q (ok=%v)", value, ok)
	}
}

// TestMemoryStoreExpiry checks that entries expire after the TTL.
func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Millisecond)
	ctx := context.Background()

	if err := store.Set(ctx, "key", "value"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(ctx, "key"); ok {
		t.Fatal("expected entry to expire")
	}
}

// TestMemoryStoreNoTTL checks that a non-positive TTL disables expiry.
func TestMemoryStoreNoTTL(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if err := store.Set(ctx, "key", "value"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := store.Get(ctx, "key"); !ok {
		t.Fatal("expected entry to persist")
	}
}
