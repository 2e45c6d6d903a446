package cache

import (
	"time"
)

// Options selects and configures a cache backend.
type Options struct {
	// RedisURL selects the Redis backend when non-empty; otherwise the
	// in-memory backend is used.
	RedisURL string

	// Prefix is the key prefix for the Redis backend.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum entry count for the memory backend.
	MaxSize int
}

// New creates a cache backend from options. With a Redis URL it
// connects to Redis; otherwise it builds an in-memory cache.
func New(opts Options) (Cacher, error) {
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = time.Hour
	}

	if opts.RedisURL != "" {
		redisOpts := DefaultRedisCacheOptions()
		redisOpts.URL = opts.RedisURL
		if opts.Prefix != "" {
			redisOpts.Prefix = opts.Prefix
		}
		redisOpts.DefaultTTL = opts.DefaultTTL
		return NewRedisCache(redisOpts)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	}), nil
}
