package drip

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel/attribute"

	"github.com/evm-faucet/drip/internal/chain"
	"github.com/evm-faucet/drip/internal/drip/store"
	"github.com/evm-faucet/drip/internal/lock"
	"github.com/evm-faucet/drip/internal/retry"
	"github.com/evm-faucet/drip/internal/tracing"
)

const (
	ReasonMissingHash = "missing tx_hash in broadcast state"

	ReconcilerSkipCounterKey = "drip:reconciler:skipped"

	reconcileIntervalDefault      = 60 * time.Second
	reconcileBatchSizeDefault     = 50
	reconcileMaxIterationsDefault = 10
	reconcileLockTTLDefault       = 120 * time.Second
	statCollectionIntervalDefault = 60 * time.Second

	// the sweep stops once this fraction of the lock TTL is left
	lockTTLReserveDivisor = 4
)

var (
	ErrOutcomeClientNil = errors.New("outcome client cannot be nil")
	ErrCounterNil       = errors.New("counter cannot be nil")
)

// CycleResult summarizes one reconciliation cycle.
type CycleResult struct {
	Skipped bool
	Batches int
	Sent    int
	Failed  int
	Pending int
	Unknown int
	Errored int

	// Truncated is set when the sweep stopped before the lock TTL ran out.
	Truncated bool
}

func (c CycleResult) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool("skipped", c.Skipped),
		attribute.Int("batches", c.Batches),
		attribute.Int("sent", c.Sent),
		attribute.Int("failed", c.Failed),
		attribute.Int("pending", c.Pending),
		attribute.Int("unknown", c.Unknown),
		attribute.Int("errored", c.Errored),
		attribute.Bool("truncated", c.Truncated),
	}
}

// Reconciler resolves requests left in broadcast state by polling the network for their outcome.
type Reconciler struct {
	store   store.RequestStore
	chain   OutcomeClient
	locker  Locker
	counter Counter
	logger  *slog.Logger
	stats   *Stats
	now     func() time.Time

	interval               time.Duration
	batchSize              int
	maxIterations          int
	lockTTL                time.Duration
	retryPolicy            retry.Policy
	statCollectionInterval time.Duration

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue

	wg        *sync.WaitGroup
	ctx       context.Context
	cancelAll context.CancelFunc
}

func NewReconciler(s store.RequestStore, c OutcomeClient, l Locker, counter Counter, opts ...func(*Reconciler)) (*Reconciler, error) {
	if s == nil {
		return nil, ErrStoreNil
	}
	if c == nil {
		return nil, ErrOutcomeClientNil
	}
	if l == nil {
		return nil, ErrLockerNil
	}
	if counter == nil {
		return nil, ErrCounterNil
	}

	r := &Reconciler{
		store:                  s,
		chain:                  c,
		locker:                 l,
		counter:                counter,
		logger:                 slog.Default(),
		now:                    time.Now,
		interval:               reconcileIntervalDefault,
		batchSize:              reconcileBatchSizeDefault,
		maxIterations:          reconcileMaxIterationsDefault,
		lockTTL:                reconcileLockTTLDefault,
		retryPolicy:            retry.Policy{MaxRetries: maxRetriesDefault, BaseDelay: retryBaseDelayDefault},
		statCollectionInterval: statCollectionIntervalDefault,
		wg:                     &sync.WaitGroup{},
	}

	for _, opt := range opts {
		opt(r)
	}

	r.logger = r.logger.With(slog.String("module", "reconciler"))

	ctx, cancelAll := context.WithCancel(context.Background())
	r.ctx = ctx
	r.cancelAll = cancelAll

	return r, nil
}

// Start schedules the reconciliation cycle and, if stats are set, the request stats collection.
func (r *Reconciler) Start() {
	r.logger.Info("Starting reconciler", slog.String("interval", r.interval.String()), slog.Int("batchSize", r.batchSize), slog.Int("maxIterations", r.maxIterations))

	r.StartRoutine(r.interval, ReconcileBroadcast, "ReconcileBroadcast")

	if r.stats != nil {
		r.StartRoutine(r.statCollectionInterval, CollectRequestStats, "CollectRequestStats")
	}
}

func (r *Reconciler) StartRoutine(tickerInterval time.Duration, routine func(context.Context, *Reconciler) []attribute.KeyValue, routineName string) {
	ticker := time.NewTicker(tickerInterval)
	r.wg.Add(1)

	go func() {
		defer func() {
			r.wg.Done()
			ticker.Stop()
		}()

		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				ctx, span := tracing.StartTracing(r.ctx, routineName, r.tracingEnabled, r.tracingAttributes...)
				attr := routine(ctx, r)
				if span != nil && len(attr) > 0 {
					span.SetAttributes(attr...)
				}
				tracing.EndTracing(span, nil)
			}
		}
	}()
}

func (r *Reconciler) Shutdown() {
	r.logger.Info("Shutting down reconciler")

	if r.cancelAll != nil {
		r.cancelAll()
	}

	r.wg.Wait()
}

// ReconcileBroadcast is the scheduled form of Reconcile.
func ReconcileBroadcast(ctx context.Context, r *Reconciler) []attribute.KeyValue {
	result, err := r.Reconcile(ctx)
	if err != nil {
		r.logger.Error("Reconciliation cycle failed", slog.String("err", err.Error()))
	}

	return result.attributes()
}

// CollectRequestStats updates the request gauges.
func CollectRequestStats(ctx context.Context, r *Reconciler) []attribute.KeyValue {
	counts, err := r.store.CountByStatus(ctx)
	if err != nil {
		r.logger.Error("Failed to get request stats", slog.String("err", err.Error()))
		return nil
	}

	r.stats.requests(counts)

	return nil
}

// Reconcile runs one cycle. It is skipped if another instance holds the reconciler lock.
func (r *Reconciler) Reconcile(ctx context.Context) (CycleResult, error) {
	var result CycleResult

	token, err := r.locker.Acquire(ctx, lock.ReconcilerKey, r.lockTTL)
	if err != nil {
		if !errors.Is(err, lock.ErrLockHeld) {
			return result, err
		}

		result.Skipped = true
		r.stats.skipped()

		skipped, incrErr := r.counter.Incr(ctx, ReconcilerSkipCounterKey)
		if incrErr != nil {
			r.logger.Warn("Failed to increment skip counter", slog.String("err", incrErr.Error()))
		}
		r.logger.Debug("Reconciliation already running elsewhere, skipping cycle", slog.Int64("skipped", skipped))

		return result, nil
	}
	defer r.locker.Release(ctx, lock.ReconcilerKey, token)

	// rows are only resolved while the lock is held with time to spare
	budget := r.lockTTL - r.lockTTL/lockTTLReserveDivisor
	sweepDeadline := r.now().Add(budget)
	sweepCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	cursor := store.Cursor{}
sweep:
	for range r.maxIterations {
		batch, err := retry.Do(sweepCtx, r.retryPolicy, func(ctx context.Context) ([]*store.Request, error) {
			return r.store.GetBroadcast(ctx, cursor, r.batchSize)
		}, retry.WithLogger(r.logger, "get broadcast"))
		if err != nil {
			return result, err
		}

		if len(batch) == 0 {
			break
		}

		result.Batches++
		for _, request := range batch {
			if !r.now().Before(sweepDeadline) || sweepCtx.Err() != nil {
				r.logger.Warn("Reconciler lock about to expire, ending sweep early", slog.String("lockTTL", r.lockTTL.String()))
				result.Truncated = true
				break sweep
			}
			r.resolve(sweepCtx, request, &result)
		}

		if len(batch) < r.batchSize {
			break
		}

		cursor = batch[len(batch)-1].Cursor()
	}

	if result.Sent > 0 || result.Failed > 0 {
		r.logger.Info("Reconciled broadcast requests", slog.Int("sent", result.Sent), slog.Int("failed", result.Failed), slog.Int("pending", result.Pending))
	}

	return result, nil
}

func (r *Reconciler) resolve(ctx context.Context, request *store.Request, result *CycleResult) {
	logger := r.logger.With(slog.Int64("id", request.ID), slog.String("hash", request.TxHash))

	if request.TxHash == "" {
		err := r.store.SetBroadcastFailed(ctx, request.ID, "", ReasonMissingHash)
		if err != nil {
			logger.Error("Failed to mark request without hash as failed", slog.String("err", err.Error()))
			result.Errored++
			return
		}

		logger.Warn("Broadcast request without hash marked as failed")
		result.Failed++
		r.stats.resolved(resultFailed)
		return
	}

	hash := common.HexToHash(request.TxHash)

	outcome, err := retry.Do(ctx, r.retryPolicy, func(ctx context.Context) (chain.Outcome, error) {
		return r.chain.TransactionOutcome(ctx, hash)
	}, retry.WithLogger(logger, "transaction outcome"))
	if err != nil {
		logger.Warn("Failed to get transaction outcome", slog.String("err", err.Error()))
		result.Errored++
		return
	}

	switch outcome {
	case chain.OutcomePending:
		result.Pending++
	case chain.OutcomeSuccess:
		err = r.store.SetSent(ctx, request.ID, request.TxHash)
		if err != nil && !errors.Is(err, store.ErrNotUpdated) {
			logger.Error("Failed to mark request as sent", slog.String("err", err.Error()))
			result.Errored++
			return
		}
		result.Sent++
		r.stats.resolved(resultSent)
	case chain.OutcomeReverted:
		err = r.store.SetBroadcastFailed(ctx, request.ID, request.TxHash, ReasonReverted)
		if err != nil && !errors.Is(err, store.ErrNotUpdated) {
			logger.Error("Failed to mark reverted request as failed", slog.String("err", err.Error()))
			result.Errored++
			return
		}
		result.Failed++
		r.stats.resolved(resultFailed)
	default:
		logger.Warn("Unexpected transaction outcome, leaving request for next cycle", slog.String("outcome", outcome.String()))
		result.Unknown++
	}
}
