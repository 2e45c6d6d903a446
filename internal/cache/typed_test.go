package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestTypedCacheRoundTrip(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	c := NewTypedCache[payload](backend, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", &payload{Name: "a", Count: 3}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get(ctx, "k")
	if !ok {
		t.Fatal("Get: miss")
	}
	if got.Name != "a" || got.Count != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestTypedCacheGetOrSet(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	c := NewTypedCache[payload](backend, time.Minute)
	ctx := context.Background()

	calls := 0
	fn := func() (*payload, error) {
		calls++
		return &payload{Name: "computed"}, nil
	}

	v, err := c.GetOrSet(ctx, "k", fn)
	if err != nil {
		t.Fatalf("GetOrSet: %v", err)
	}
	if v.Name != "computed" {
		t.Errorf("v = %+v", v)
	}
	if _, err := c.GetOrSet(ctx, "k", fn); err != nil {
		t.Fatalf("GetOrSet second: %v", err)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestTypedCacheGetOrSetError(t *testing.T) {
	backend := NewSimpleMemoryCache(time.Minute)
	defer backend.Close()
	c := NewTypedCache[payload](backend, time.Minute)

	wantErr := errors.New("load failed")
	_, err := c.GetOrSet(context.Background(), "k", func() (*payload, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	// A failed compute must not poison the cache.
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Error("failed compute left a cached value")
	}
}
