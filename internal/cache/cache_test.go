package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetMiss(t *testing.T) {
	c := NewMemory()
	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestMemorySetGet(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if string(val) != "v" {
		t.Fatalf("unexpected value: %q", val)
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory()
	now := time.Date(2025, time.November, 9, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("entry should still be fresh")
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	c := NewMemory()
	now := time.Date(2025, time.November, 9, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	now = now.Add(1000 * time.Hour)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatalf("zero-ttl entry should not expire")
	}
}
