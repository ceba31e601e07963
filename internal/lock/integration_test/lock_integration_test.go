package integration_test

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/cache"
	"github.com/evm-faucet/drip/internal/lock"
	testutils "github.com/evm-faucet/drip/internal/test_utils"
)

var (
	redisAddr string
	logger    *slog.Logger
)

func TestMain(m *testing.M) {
	os.Exit(testmain(m))
}

func testmain(m *testing.M) int {
	flag.Parse()

	if testing.Short() {
		return m.Run()
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("failed to create pool: %v", err)
		return 1
	}

	resource, port, err := testutils.RunRedis(pool, "6385", "drip-lock-redis")
	if err != nil {
		log.Print(err)
		return 1
	}
	defer func() {
		err = pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge pool: %v", err)
		}
	}()

	redisAddr = "localhost:" + port
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	err = pool.Retry(func() error {
		c := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer c.Close()
		return c.Ping(context.Background()).Err()
	})
	if err != nil {
		log.Printf("failed to connect to redis: %v", err)
		return 1
	}

	return m.Run()
}

func newMutex(t *testing.T) *lock.Mutex {
	t.Helper()

	c := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = c.Close() })

	return lock.New(cache.NewRedisStore(c), logger)
}

func TestMutex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	t.Run("only one of many contenders holds the key", func(t *testing.T) {
		// given
		key := lock.SignerKey("0xcontended")
		const contenders = 10

		var held atomic.Int32
		wg := &sync.WaitGroup{}

		// when
		for range contenders {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := newMutex(t).Acquire(context.Background(), key, time.Minute)
				if err == nil {
					held.Add(1)
					return
				}
				assert.ErrorIs(t, err, lock.ErrLockHeld)
			}()
		}
		wg.Wait()

		// then
		require.Equal(t, int32(1), held.Load())
	})

	t.Run("release by a stranger leaves the key held", func(t *testing.T) {
		// given
		key := lock.SignerKey("0xstranger")
		owner := newMutex(t)
		stranger := newMutex(t)

		token, err := owner.Acquire(context.Background(), key, time.Minute)
		require.NoError(t, err)

		// when
		stranger.Release(context.Background(), key, "not-the-token")

		// then
		_, err = stranger.Acquire(context.Background(), key, time.Minute)
		require.ErrorIs(t, err, lock.ErrLockHeld)

		owner.Release(context.Background(), key, token)
		token, err = stranger.Acquire(context.Background(), key, time.Minute)
		require.NoError(t, err)
		require.NotEmpty(t, token)
	})

	t.Run("expired key can be taken over", func(t *testing.T) {
		// given
		key := lock.SignerKey("0xexpiring")
		first := newMutex(t)
		second := newMutex(t)

		_, err := first.Acquire(context.Background(), key, 200*time.Millisecond)
		require.NoError(t, err)

		// when
		token, err := second.AcquireWithBackoff(context.Background(), key, time.Minute, 10, 50*time.Millisecond)

		// then
		require.NoError(t, err)
		require.NotEmpty(t, token)
	})

	t.Run("backoff gives up while the key is held", func(t *testing.T) {
		// given
		key := lock.SignerKey("0xbusy")
		holder := newMutex(t)

		_, err := holder.Acquire(context.Background(), key, time.Minute)
		require.NoError(t, err)

		// when
		_, err = newMutex(t).AcquireWithBackoff(context.Background(), key, time.Minute, 3, 10*time.Millisecond)

		// then
		require.True(t, errors.Is(err, lock.ErrLockHeld))
	})

	t.Run("skip counter increments", func(t *testing.T) {
		// given
		c := redis.NewClient(&redis.Options{Addr: redisAddr})
		t.Cleanup(func() { _ = c.Close() })
		store := cache.NewRedisStore(c)

		// when
		first, err := store.Incr(context.Background(), "drip:test:counter")
		require.NoError(t, err)
		second, err := store.Incr(context.Background(), "drip:test:counter")
		require.NoError(t, err)

		// then
		require.Equal(t, first+1, second)
	})
}
