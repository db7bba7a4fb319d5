package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	if _, ok, err := store.Get(ctx, "batches"); err != nil || ok {
		t.Fatalf("Expected missing slot, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "batches", "[]"); err != nil {
		t.Fatalf("Failed to set slot: %v", err)
	}

	value, ok, err := store.Get(ctx, "batches")
	if err != nil || !ok {
		t.Fatalf("Expected slot to exist, got ok=%v err=%v", ok, err)
	}
	if value != "[]" {
		t.Errorf("Expected value [], got %s", value)
	}
}

func TestMemory_SetManyAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	_ = store.Set(ctx, "batches", "old")

	store.FailOn = map[string]error{"orders": errors.New("quota exceeded")}
	err := store.SetMany(ctx, map[string]string{"batches": "new", "orders": "new"})
	if err == nil {
		t.Fatal("Expected SetMany to fail")
	}

	value, _, _ := store.Get(ctx, "batches")
	if value != "old" {
		t.Errorf("Expected batches slot to stay old, got %s", value)
	}
}

func TestMemory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewMemory().Set(ctx, "orders", "[]"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
