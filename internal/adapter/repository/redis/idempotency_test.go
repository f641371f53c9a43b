package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestIdempotencyStore_FirstCheckSetsPlaceholder(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected first check to report missing key")
	}
	if cached != nil {
		t.Fatalf("expected no cached response, got %q", cached)
	}

	val, err := client.Get(ctx, "idempotency:key-1").Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != "processing" {
		t.Fatalf("expected processing placeholder, got %q", val)
	}
}

func TestIdempotencyStore_SecondCheckReturnsCached(t *testing.T) {
	client, _ := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	response := []byte(`{"id":"bud-1"}`)
	if err := store.Update(ctx, "key-1", response, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, cached, err := store.CheckAndSet(ctx, "key-1", nil, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected key to exist after update")
	}
	if !bytes.Equal(cached, response) {
		t.Fatalf("expected cached response %q, got %q", response, cached)
	}
}

func TestIdempotencyStore_KeyExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if _, _, err := store.CheckAndSet(ctx, "key-1", []byte("resp"), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	exists, _, err := store.CheckAndSet(ctx, "key-1", nil, time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatal("expected key to expire after TTL")
	}
}
