package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ccoveille/go-safecast"
	"github.com/cenkalti/backoff/v4"

	"github.com/evm-faucet/drip/config"
	"github.com/evm-faucet/drip/internal/drip"
	"github.com/evm-faucet/drip/internal/fees"
	"github.com/evm-faucet/drip/internal/message_queue/nats/client/nats_jetstream"
	"github.com/evm-faucet/drip/internal/message_queue/nats/nats_connection"
	"github.com/evm-faucet/drip/internal/retry"
)

func StartWorker(logger *slog.Logger, dripConfig *config.DripConfig, clients *Clients, stats *drip.Stats, shutdownCh chan string) (func(), error) {
	logger = logger.With(slog.String("service", "worker"))
	logger.Info("Starting")

	cfg := dripConfig.Drip
	mqCfg := dripConfig.MessageQueue

	amount, err := cfg.AmountWei()
	if err != nil {
		return nil, err
	}

	priorityFeeFloor, err := config.ParseWei(cfg.PriorityFeeFloor)
	if err != nil {
		return nil, fmt.Errorf("invalid priority fee floor: %w", err)
	}

	maxFeeFloor, err := config.ParseWei(cfg.MaxFeeFloor)
	if err != nil {
		return nil, fmt.Errorf("invalid max fee floor: %w", err)
	}

	estimator, err := fees.NewEstimator(cfg.FeeSafetyMargin, priorityFeeFloor, maxFeeFloor)
	if err != nil {
		return nil, err
	}

	processorOpts := []func(*drip.Processor){
		drip.WithLogger(logger),
		drip.WithStats(stats),
		drip.WithConfirmationTimeout(cfg.ConfirmationTimeout),
		drip.WithFallbackGasLimit(cfg.FallbackGasLimit),
	}

	if cfg.SignerLock != nil {
		processorOpts = append(processorOpts, drip.WithSignerLock(cfg.SignerLock.TTL, cfg.SignerLock.MaxAttempts, cfg.SignerLock.BaseDelay))
	}

	if cfg.Retry != nil {
		processorOpts = append(processorOpts, drip.WithRetryPolicy(retry.Policy{MaxRetries: cfg.Retry.MaxRetries, BaseDelay: cfg.Retry.BaseDelay}))
	}

	if dripConfig.Tracing.IsEnabled() {
		processorOpts = append(processorOpts, drip.WithTracer(dripConfig.Tracing.KeyValueAttributes...))
	}

	processor, err := drip.NewProcessor(clients.Store, clients.Chain, clients.Locker, estimator, amount, processorOpts...)
	if err != nil {
		return nil, err
	}

	mqClient, err := NewMqClient(logger, dripConfig, nats_jetstream.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()

		consumeErr := mqClient.Consume(ctx, func(ctx context.Context, data []byte) error {
			item, decodeErr := drip.DecodeWorkItem(data)
			if decodeErr != nil {
				return errors.Join(nats_jetstream.ErrUnprocessable, decodeErr)
			}

			return processor.HandleWorkItem(ctx, item)
		})
		if consumeErr != nil {
			logger.Error("Failed to consume work items", slog.String("err", consumeErr.Error()), slog.String("topic", mqCfg.Topic))
			shutdownCh <- "work item consumer failed"
		}
	}()

	stopFn := func() {
		logger.Info("Shutting down worker")
		cancel()
		wg.Wait()
		mqClient.Shutdown()
		logger.Info("Shutdown worker complete")
	}

	logger.Info("Ready to work")
	return stopFn, nil
}

// NewMqClient connects to the message queue, retrying while the server is not reachable yet.
func NewMqClient(logger *slog.Logger, dripConfig *config.DripConfig, opts ...nats_jetstream.Option) (*nats_jetstream.Client, error) {
	mqCfg := dripConfig.MessageQueue

	clientOpts := []nats_jetstream.Option{
		nats_jetstream.WithMaxDeliver(mqCfg.MaxDeliver),
		nats_jetstream.WithAckWait(mqCfg.AckWait),
		nats_jetstream.WithStreamMaxAge(mqCfg.StreamMaxAge),
		nats_jetstream.WithRedeliveryBackoff(mqCfg.RedeliveryBackoff...),
	}
	if mqCfg.FileStorage {
		clientOpts = append(clientOpts, nats_jetstream.WithFileStorage())
	}
	if dripConfig.Tracing.IsEnabled() {
		clientOpts = append(clientOpts, nats_jetstream.WithTracer(dripConfig.Tracing.KeyValueAttributes...))
	}
	clientOpts = append(clientOpts, opts...)

	retries, err := safecast.ToUint64(max(mqCfg.ConnectionAttempts-1, 0))
	if err != nil {
		return nil, err
	}

	connect := func() (*nats_jetstream.Client, error) {
		nc, connErr := nats_connection.New(mqCfg.URL, logger)
		if connErr != nil {
			return nil, connErr
		}

		client, clientErr := nats_jetstream.New(nc, logger, mqCfg.Topic, clientOpts...)
		if clientErr != nil {
			nc.Close()
			if errors.Is(clientErr, nats_jetstream.ErrFailedToApplyOption) {
				return nil, backoff.Permanent(clientErr)
			}
			return nil, clientErr
		}

		return client, nil
	}

	notify := func(err error, next time.Duration) {
		logger.Warn("Failed to connect to message queue, retrying", slog.String("url", mqCfg.URL), slog.String("next", next.String()), slog.String("err", err.Error()))
	}

	client, err := backoff.RetryNotifyWithData(connect, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), notify)
	if err != nil {
		return nil, fmt.Errorf("failed to create message queue client at %s: %w", mqCfg.URL, err)
	}

	return client, nil
}
