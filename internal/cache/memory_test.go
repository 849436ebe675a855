package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory_SetAndGet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "loan", `{"monthlyPayment": 1896.2}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, ok := c.Get(ctx, "loan")
	if !ok {
		t.Fatal("expected a hit")
	}
	if body != `{"monthlyPayment": 1896.2}` {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestMemory_MissingKey(t *testing.T) {
	c := NewMemory(time.Minute)

	if _, ok := c.Get(context.Background(), "nope"); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestMemory_ExpiredEntryIsAMiss(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()

	if err := c.Set(ctx, "loan", "body"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get(ctx, "loan"); ok {
		t.Error("expected expired entry to read as a miss")
	}
}

func TestMemory_OverwriteRefreshesValue(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "loan", "old")
	c.Set(ctx, "loan", "new")

	body, ok := c.Get(ctx, "loan")
	if !ok || body != "new" {
		t.Errorf("expected overwritten value, got %q (hit=%v)", body, ok)
	}
}
