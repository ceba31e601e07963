package cmd

import (
	"log/slog"

	"github.com/evm-faucet/drip/config"
	"github.com/evm-faucet/drip/internal/drip"
	"github.com/evm-faucet/drip/internal/retry"
)

func StartReconciler(logger *slog.Logger, dripConfig *config.DripConfig, clients *Clients, stats *drip.Stats) (func(), error) {
	logger = logger.With(slog.String("service", "reconciler"))
	logger.Info("Starting")

	reconciler, err := NewReconciler(logger, dripConfig, clients, stats)
	if err != nil {
		return nil, err
	}

	reconciler.Start()

	stopFn := func() {
		reconciler.Shutdown()
		logger.Info("Shutdown reconciler complete")
	}

	logger.Info("Ready to work")
	return stopFn, nil
}

func NewReconciler(logger *slog.Logger, dripConfig *config.DripConfig, clients *Clients, stats *drip.Stats) (*drip.Reconciler, error) {
	cfg := dripConfig.Reconciler

	opts := []func(*drip.Reconciler){
		drip.WithReconcilerLogger(logger),
		drip.WithReconcilerStats(stats),
	}

	if cfg != nil {
		opts = append(opts,
			drip.WithReconcileInterval(cfg.Interval),
			drip.WithBatchSize(cfg.BatchSize),
			drip.WithMaxIterations(cfg.MaxIterations),
			drip.WithReconcilerLockTTL(cfg.LockTTL),
		)
	}

	if dripConfig.Drip != nil && dripConfig.Drip.Retry != nil {
		opts = append(opts, drip.WithReconcilerRetryPolicy(retry.Policy{MaxRetries: dripConfig.Drip.Retry.MaxRetries, BaseDelay: dripConfig.Drip.Retry.BaseDelay}))
	}

	if dripConfig.Tracing.IsEnabled() {
		opts = append(opts, drip.WithReconcilerTracer(dripConfig.Tracing.KeyValueAttributes...))
	}

	return drip.NewReconciler(clients.Store, clients.Chain, clients.Locker, clients.Cache, opts...)
}
