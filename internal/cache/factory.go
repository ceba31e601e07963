package cache

import (
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/evm-faucet/drip/config"
)

var ErrCacheUnknownType = errors.New("unknown cache type")

// NewCacheStore creates a new Store based on the provided configuration.
func NewCacheStore(cacheConfig *config.CacheConfig) (Store, error) {
	switch cacheConfig.Engine {
	case config.CacheEngineInMemory:
		return NewMemoryStore(), nil
	case config.CacheEngineRedis:
		c := redis.NewClient(&redis.Options{
			Addr:     cacheConfig.Redis.Addr,
			Password: cacheConfig.Redis.Password,
			DB:       cacheConfig.Redis.DB,
		})
		return NewRedisStore(c), nil
	default:
		return nil, ErrCacheUnknownType
	}
}
