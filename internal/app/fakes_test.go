package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
)

// ---- fakes ----

type fakeModel struct {
	reply string
	err   error
	block bool // wait for ctx instead of answering
	calls atomic.Int32
	mu    sync.Mutex
	last  []domain.ChatMessage
}

func (f *fakeModel) Complete(ctx context.Context, msgs []domain.ChatMessage) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = msgs
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*string); ok {
		*d = v.(string)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

type fakeRepo struct {
	mu     sync.Mutex
	places []domain.Place
	err    error
}

func (r *fakeRepo) UpsertPlace(ctx context.Context, p domain.Place) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.places = append(r.places, p)
	return nil
}

func (r *fakeRepo) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.places, nil
}

var errBoom = errors.New("boom")

// ---- helpers ----

func seedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return c
}

func mustCatalog(t *testing.T, places ...domain.Place) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(places)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}
