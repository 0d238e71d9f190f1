package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/i474232898/weather-lookup/internal/store"
)

func TestSweepPurgesExpired(t *testing.T) {
	kv := store.NewMemoryStore()
	ctx := context.Background()
	_ = kv.Set(ctx, "latitude", "1", -time.Second)
	_ = kv.Set(ctx, "longitude", "2", store.OneYear)

	New(kv, time.Hour).Sweep()

	n, err := kv.PurgeExpired(ctx)
	if err != nil {
		t.Fatalf("PurgeExpired failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected sweep to have purged everything expired, %d left", n)
	}
	if _, err := kv.Get(ctx, "longitude"); errors.Is(err, store.ErrNotFound) {
		t.Fatal("live entry must survive the sweep")
	}
}

// countingKV records how often the sweep ran.
type countingKV struct {
	store.KV
	purges chan struct{}
}

func (c countingKV) PurgeExpired(ctx context.Context) (int, error) {
	select {
	case c.purges <- struct{}{}:
	default:
	}
	return c.KV.PurgeExpired(ctx)
}

func TestStartRunsImmediately(t *testing.T) {
	kv := countingKV{KV: store.NewMemoryStore(), purges: make(chan struct{}, 1)}

	s := New(kv, time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	select {
	case <-kv.purges:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the first sweep to run on start")
	}
}
