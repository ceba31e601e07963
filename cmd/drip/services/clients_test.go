package cmd

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/cache"
)

func TestClientsClose(t *testing.T) {
	// given
	mr := miniredis.RunT(t)
	redisStore := cache.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, redisStore.Ping(context.Background()))

	sut := &Clients{Cache: redisStore}

	// when
	sut.Close()

	// then
	require.ErrorIs(t, redisStore.Ping(context.Background()), cache.ErrCacheNotResponding)
}
