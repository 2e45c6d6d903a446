package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q, want v", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: 10 * time.Millisecond})
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("err = %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	original := []byte("value")
	if err := c.Set(ctx, "k", original, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	original[0] = 'X'

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("cached value mutated: %q", got)
	}
	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "value" {
		t.Errorf("returned value aliased cache storage: %q", again)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer c.Close()
	ctx := context.Background()

	_ = c.Set(ctx, "sections:all", []byte("a"), 0)
	_ = c.Set(ctx, "sections:home", []byte("b"), 0)
	_ = c.Set(ctx, "config:header", []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, "sections:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if has, _ := c.Has(ctx, "sections:all"); has {
		t.Error("sections:all survived prefix delete")
	}
	if has, _ := c.Has(ctx, "config:header"); !has {
		t.Error("config:header removed by unrelated prefix delete")
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	_ = c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Fatalf("err = %v, want ErrCacheClosed", err)
	}
}
