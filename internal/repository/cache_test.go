package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/errors"
	"github.com/tm-acme-shop/acme-shop-admin-console/internal/logging"
)

func redisStore(t *testing.T) *RedisDraftStore {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires redis (set REDIS_TEST_ADDR)")
	}
	store := NewRedisDraftStoreWithClient(redis.NewClient(&redis.Options{Addr: addr}), time.Minute, logging.NewWithZap(nil))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisDraftStore_DefaultTTL(t *testing.T) {
	store := NewRedisDraftStoreWithClient(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0, logging.NewWithZap(nil))
	defer store.Close()

	if store.ttl != defaultDraftTTL {
		t.Errorf("Expected default TTL %s, got %s", defaultDraftTTL, store.ttl)
	}
}

func TestRedisDraftStore_RoundTrip(t *testing.T) {
	store := redisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, newSession("it-1")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := store.Get(ctx, "it-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Snapshot.New.UserID != "1" {
		t.Errorf("Unexpected session %+v", got)
	}

	if err := store.Delete(ctx, "it-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, "it-1"); !errors.Is(err, errors.ErrDraftNotFound) {
		t.Errorf("Expected ErrDraftNotFound, got %v", err)
	}
}
