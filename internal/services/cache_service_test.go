package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Name() string                   { return "failing" }
func (f *failingStore) Ping(ctx context.Context) error { return f.getErr }
func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, f.getErr
}
func (f *failingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.sets++
	return f.setErr
}

type payload struct {
	Result string `json:"result"`
}

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemoryStore(2)
	ctx := context.Background()

	_ = store.Set(ctx, "a", []byte("1"), time.Hour)
	_ = store.Set(ctx, "b", []byte("2"), time.Hour)

	// acessa "a" para que "b" seja o menos usado
	if _, found, _ := store.Get(ctx, "a"); !found {
		t.Fatal("expected a to be present")
	}

	_ = store.Set(ctx, "c", []byte("3"), time.Hour)

	if _, found, _ := store.Get(ctx, "b"); found {
		t.Error("b should have been evicted")
	}
	if value, found, _ := store.Get(ctx, "c"); !found || string(value) != "3" {
		t.Errorf("c = %q, found = %v", value, found)
	}
	if store.Size() != 2 {
		t.Errorf("Size() = %d, want 2", store.Size())
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	_ = store.Set(ctx, "k", []byte("v"), 24*time.Hour)

	now = now.Add(24*time.Hour - time.Second)
	if _, found, _ := store.Get(ctx, "k"); !found {
		t.Error("entry should still be valid just before TTL")
	}

	now = now.Add(time.Second)
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Error("entry should be expired exactly at TTL")
	}
}

func TestMemoryStoreCleanupExpired(t *testing.T) {
	store := NewMemoryStore(10)
	ctx := context.Background()
	now := time.Now()
	store.now = func() time.Time { return now }

	_ = store.Set(ctx, "short", []byte("1"), time.Minute)
	_ = store.Set(ctx, "long", []byte("2"), time.Hour)

	now = now.Add(2 * time.Minute)
	if removed := store.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if store.Size() != 1 {
		t.Errorf("Size() = %d, want 1", store.Size())
	}
}

func TestCacheGatewayRoundTrip(t *testing.T) {
	gateway := NewCacheGateway(NewMemoryStore(10), time.Hour)
	ctx := context.Background()
	key := gateway.Key("analyze", "https://example.com|seo")

	var out payload
	if gateway.Get(ctx, key, &out) {
		t.Fatal("expected miss before Set")
	}

	gateway.Set(ctx, key, payload{Result: "# report"})

	if !gateway.Get(ctx, key, &out) {
		t.Fatal("expected hit after Set")
	}
	if out.Result != "# report" {
		t.Errorf("Result = %q", out.Result)
	}
}

func TestCacheGatewayKey(t *testing.T) {
	gateway := NewCacheGateway(NewMemoryStore(1), time.Hour)

	a := gateway.Key("analyze", "https://example.com|seo")
	b := gateway.Key("analyze", "https://example.com|seo")
	c := gateway.Key("backlinks", "https://example.com|seo")
	d := gateway.Key("analyze", "https://example.com|")

	if a != b {
		t.Error("keys should be deterministic")
	}
	if a == c {
		t.Error("endpoints should not share keys")
	}
	if a == d {
		t.Error("keyword should be part of the key")
	}
	if len(a) != len("seo:analyze:")+32 {
		t.Errorf("unexpected key length: %q", a)
	}
}

func TestCacheGatewaySwallowsStoreErrors(t *testing.T) {
	store := &failingStore{getErr: errors.New("connection refused"), setErr: errors.New("read only")}
	gateway := NewCacheGateway(store, time.Hour)
	ctx := context.Background()

	var out payload
	if gateway.Get(ctx, "k", &out) {
		t.Error("store error should read as a miss")
	}

	gateway.Set(ctx, "k", payload{Result: "x"})
	if store.sets != 1 {
		t.Errorf("sets = %d, want 1", store.sets)
	}
}

func TestCacheGatewayCorruptValueIsMiss(t *testing.T) {
	store := NewMemoryStore(10)
	gateway := NewCacheGateway(store, time.Hour)
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("{not json"), time.Hour)

	var out payload
	if gateway.Get(ctx, "k", &out) {
		t.Error("corrupt value should read as a miss")
	}
}

func TestCacheGatewaySetSurvivesCanceledContext(t *testing.T) {
	gateway := NewCacheGateway(NewMemoryStore(10), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gateway.Set(ctx, "k", payload{Result: "x"})

	var out payload
	if !gateway.Get(context.Background(), "k", &out) {
		t.Error("Set should not depend on the caller context being alive")
	}
}
