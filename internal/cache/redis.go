package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var compareAndDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore is an implementation of Store using Redis.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(c redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client: c,
	}
}

func (r *RedisStore) SetIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, errors.Join(ErrCacheFailedToSet, err)
	}

	return ok, nil
}

func (r *RedisStore) DeleteIfEquals(ctx context.Context, key string, value string) (bool, error) {
	deleted, err := compareAndDelete.Run(ctx, r.client, []string{key}, value).Int64()
	if err != nil {
		return false, errors.Join(ErrCacheFailedToDel, err)
	}

	return deleted == 1, nil
}

func (r *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	value, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.Join(ErrCacheFailedToIncr, err)
	}

	return value, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	result, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheNotFound
	} else if err != nil {
		return "", errors.Join(ErrCacheFailedToGet, err)
	}

	return result, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		return errors.Join(ErrCacheNotResponding, err)
	}

	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
