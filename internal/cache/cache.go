package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCacheNotFound      = errors.New("key not found in cache")
	ErrCacheFailedToSet   = errors.New("failed to set value in cache")
	ErrCacheFailedToDel   = errors.New("failed to delete value from cache")
	ErrCacheFailedToGet   = errors.New("failed to get value from cache")
	ErrCacheFailedToIncr  = errors.New("failed to increment value in cache")
	ErrCacheNotResponding = errors.New("cache not responding")
)

// Store is the shared key-value store hosting locks and counters.
type Store interface {
	// SetIfAbsent sets key to value with the given expiry only if the key does not exist yet.
	SetIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	// DeleteIfEquals deletes key only if its current value equals value. Check and delete are atomic.
	DeleteIfEquals(ctx context.Context, key string, value string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	Get(ctx context.Context, key string) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
