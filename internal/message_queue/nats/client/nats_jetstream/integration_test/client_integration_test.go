package integration_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/message_queue/nats/client/nats_jetstream"
	"github.com/evm-faucet/drip/internal/message_queue/nats/nats_connection"
	testutils "github.com/evm-faucet/drip/internal/test_utils"
)

var (
	natsURL string
	logger  *slog.Logger
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

	port := "4337"
	enableJetStreamCmd := "--js"
	name := "nats-jetstream"

	resource, url, err := testutils.RunNats(pool, port, name, enableJetStreamCmd)
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

	natsURL = url
	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	time.Sleep(5 * time.Second)
	return m.Run()
}

func newClient(t *testing.T, topic string, opts ...nats_jetstream.Option) *nats_jetstream.Client {
	t.Helper()

	nc, err := nats_connection.New(natsURL, logger)
	require.NoError(t, err)

	client, err := nats_jetstream.New(nc, logger, topic, opts...)
	require.NoError(t, err)
	t.Cleanup(client.Shutdown)

	return client
}

func TestConsume(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	t.Run("acknowledged messages are delivered once", func(t *testing.T) {
		// given
		sut := newClient(t, "drip-ack", nats_jetstream.WithConcurrency(3))

		for i := range 10 {
			require.NoError(t, sut.Publish(context.Background(), []byte(fmt.Sprintf("%d", i))))
		}

		ctx, cancel := context.WithCancel(context.Background())
		var mu sync.Mutex
		received := map[string]int{}

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sut.Consume(ctx, func(_ context.Context, data []byte) error {
				mu.Lock()
				defer mu.Unlock()
				received[string(data)]++
				return nil
			})
		}()

		// then
		require.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(received) == 10
		}, 10*time.Second, 50*time.Millisecond)

		cancel()
		wg.Wait()

		for _, count := range received {
			require.Equal(t, 1, count)
		}
	})

	t.Run("failed messages are redelivered until max deliver", func(t *testing.T) {
		// given
		sut := newClient(t, "drip-nak",
			nats_jetstream.WithMaxDeliver(3),
			nats_jetstream.WithRedeliveryBackoff(50*time.Millisecond),
		)
		require.NoError(t, sut.Publish(context.Background(), []byte("fails")))

		ctx, cancel := context.WithCancel(context.Background())
		var attempts atomic.Int32

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sut.Consume(ctx, func(_ context.Context, _ []byte) error {
				attempts.Add(1)
				return errors.New("connection refused")
			})
		}()

		// then
		require.Eventually(t, func() bool {
			return attempts.Load() == 3
		}, 10*time.Second, 50*time.Millisecond)

		time.Sleep(500 * time.Millisecond)
		require.Equal(t, int32(3), attempts.Load())

		cancel()
		wg.Wait()
	})

	t.Run("unprocessable messages are terminated", func(t *testing.T) {
		// given
		sut := newClient(t, "drip-term", nats_jetstream.WithRedeliveryBackoff(50*time.Millisecond))
		require.NoError(t, sut.Publish(context.Background(), []byte("{")))

		ctx, cancel := context.WithCancel(context.Background())
		var attempts atomic.Int32

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sut.Consume(ctx, func(_ context.Context, _ []byte) error {
				attempts.Add(1)
				return errors.Join(nats_jetstream.ErrUnprocessable, errors.New("unexpected end of JSON input"))
			})
		}()

		// then
		require.Eventually(t, func() bool {
			return attempts.Load() == 1
		}, 10*time.Second, 50*time.Millisecond)

		time.Sleep(500 * time.Millisecond)
		require.Equal(t, int32(1), attempts.Load())

		cancel()
		wg.Wait()
	})
}
