package drip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"slices"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.opentelemetry.io/otel/attribute"

	"github.com/evm-faucet/drip/internal/chain"
	"github.com/evm-faucet/drip/internal/drip/store"
	"github.com/evm-faucet/drip/internal/fees"
	"github.com/evm-faucet/drip/internal/lock"
	"github.com/evm-faucet/drip/internal/retry"
	"github.com/evm-faucet/drip/internal/tracing"
)

const (
	ReasonInvalidAddress = "invalid recipient address"
	ReasonReverted       = "transaction reverted"

	confirmationTimeoutDefault = 120 * time.Second
	fallbackGasLimitDefault    = 21000
	signerLockTTLDefault       = 180 * time.Second
	signerLockAttemptsDefault  = 4
	signerLockBaseDelayDefault = 250 * time.Millisecond
	maxRetriesDefault          = 5
	retryBaseDelayDefault      = 500 * time.Millisecond
)

var (
	ErrStoreNil               = errors.New("store cannot be nil")
	ErrChainClientNil         = errors.New("chain client cannot be nil")
	ErrLockerNil              = errors.New("locker cannot be nil")
	ErrEstimatorNil           = errors.New("fee estimator cannot be nil")
	ErrInvalidAmount          = errors.New("drip amount must be positive")
	ErrSignerLockUnavailable  = errors.New("signer lock unavailable")
	ErrBroadcastNotRecorded   = errors.New("transaction sent but broadcast state not recorded")
	ErrFailedToLoadRequest    = errors.New("failed to load request")
	ErrFailedToRecordDelivery = errors.New("failed to record drip result")
)

// Processor runs the submission pipeline for one work item at a time per call.
type Processor struct {
	store     store.RequestStore
	chain     ChainClient
	locker    Locker
	estimator *fees.Estimator
	amount    *big.Int
	logger    *slog.Logger
	now       func() time.Time
	stats     *Stats

	signerLockTTL       time.Duration
	signerLockAttempts  int
	signerLockBaseDelay time.Duration
	retryPolicy         retry.Policy
	confirmationTimeout time.Duration
	fallbackGasLimit    uint64

	tracingEnabled    bool
	tracingAttributes []attribute.KeyValue
}

func NewProcessor(s store.RequestStore, c ChainClient, l Locker, estimator *fees.Estimator, amount *big.Int, opts ...func(*Processor)) (*Processor, error) {
	if s == nil {
		return nil, ErrStoreNil
	}
	if c == nil {
		return nil, ErrChainClientNil
	}
	if l == nil {
		return nil, ErrLockerNil
	}
	if estimator == nil {
		return nil, ErrEstimatorNil
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	p := &Processor{
		store:               s,
		chain:               c,
		locker:              l,
		estimator:           estimator,
		amount:              new(big.Int).Set(amount),
		logger:              slog.Default(),
		now:                 time.Now,
		signerLockTTL:       signerLockTTLDefault,
		signerLockAttempts:  signerLockAttemptsDefault,
		signerLockBaseDelay: signerLockBaseDelayDefault,
		retryPolicy:         retry.Policy{MaxRetries: maxRetriesDefault, BaseDelay: retryBaseDelayDefault},
		confirmationTimeout: confirmationTimeoutDefault,
		fallbackGasLimit:    fallbackGasLimitDefault,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.With(slog.String("module", "processor"))

	return p, nil
}

// HandleWorkItem runs the pipeline for one work item. A returned error asks the queue to redeliver the item.
func (p *Processor) HandleWorkItem(ctx context.Context, item WorkItem) (err error) {
	var attrs []attribute.KeyValue
	if p.tracingEnabled {
		attrs = append(slices.Clone(p.tracingAttributes), attribute.Int64("request.id", item.RequestID))
	}

	ctx, span := tracing.StartTracing(ctx, "HandleWorkItem", p.tracingEnabled, attrs...)
	defer func() {
		tracing.EndTracing(span, err)
	}()

	logger := p.logger.With(slog.Int64("id", item.RequestID), slog.String("address", item.Address))

	request, proceed, err := p.loadSubmittable(ctx, logger, item.RequestID)
	if !proceed {
		return err
	}

	to, valid := parseRecipient(item.Address)
	if !valid {
		logger.Warn("Invalid recipient address")
		if errors.Is(p.markFailed(ctx, logger, request.ID, ReasonInvalidAddress), store.ErrNotUpdated) {
			p.stats.duplicate()
			return nil
		}
		p.stats.drip(resultFailed)
		return nil
	}

	key := lock.SignerKey(strings.ToLower(p.chain.SignerAddress().Hex()))
	token, err := p.locker.AcquireWithBackoff(ctx, key, p.signerLockTTL, p.signerLockAttempts, p.signerLockBaseDelay)
	if err != nil {
		p.stats.signerLockBusy()
		return errors.Join(ErrSignerLockUnavailable, err)
	}
	defer p.locker.Release(ctx, key, token)

	// another delivery of the same item may have submitted it while this one waited for the lock
	_, proceed, err = p.loadSubmittable(ctx, logger, request.ID)
	if !proceed {
		return err
	}

	broadcast, err := p.submit(ctx, logger, request.ID, to)
	if err == nil {
		return nil
	}

	return p.handleFailure(ctx, logger, request.ID, broadcast, err)
}

// loadSubmittable reads the request and reports whether it may be submitted. Missing and already submitted requests are acknowledged.
func (p *Processor) loadSubmittable(ctx context.Context, logger *slog.Logger, id int64) (*store.Request, bool, error) {
	request, err := retry.Do(ctx, p.retryPolicy, func(ctx context.Context) (*store.Request, error) {
		return p.store.Get(ctx, id)
	}, retry.WithLogger(logger, "get request"), retry.WithStopOn(store.ErrNotFound))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("Request not found, dropping work item")
			return nil, false, nil
		}
		return nil, false, errors.Join(ErrFailedToLoadRequest, err)
	}

	switch request.Status {
	case store.StatusBroadcast, store.StatusSent:
		logger.Info("Request already submitted, ignoring redelivered work item", slog.String("status", string(request.Status)), slog.String("hash", request.TxHash))
		p.stats.duplicate()
		return request, false, nil
	}

	return request, true, nil
}

func parseRecipient(address string) (common.Address, bool) {
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return common.Address{}, false
	}

	if !common.IsHexAddress(address) {
		return common.Address{}, false
	}

	return common.HexToAddress(address), true
}

// submit returns the sent transaction once it has been recorded as broadcast, even on error.
func (p *Processor) submit(ctx context.Context, logger *slog.Logger, id int64, to common.Address) (*types.Transaction, error) {
	gasLimit := p.estimateGas(ctx, logger, to)

	feeData, err := retry.Do(ctx, p.retryPolicy, p.chain.FeeData, retry.WithLogger(logger, "fee data"))
	if err != nil {
		return nil, err
	}

	quote := p.estimator.Suggest(feeData)

	balance, err := retry.Do(ctx, p.retryPolicy, p.chain.Balance, retry.WithLogger(logger, "balance"))
	if err != nil {
		return nil, err
	}

	err = fees.EnsureBalanceCovers(balance, p.amount, quote.WorstCaseCost(gasLimit))
	if err != nil {
		return nil, err
	}

	tx, err := retry.Do(ctx, p.retryPolicy, func(ctx context.Context) (*types.Transaction, error) {
		return p.chain.SignTransfer(ctx, to, p.amount, gasLimit, quote.MaxFeePerGas, quote.MaxPriorityFeePerGas)
	}, retry.WithLogger(logger, "sign transfer"))
	if err != nil {
		return nil, err
	}

	err = retry.Run(ctx, p.retryPolicy, func(ctx context.Context) error {
		return p.chain.SendTransaction(ctx, tx)
	}, retry.WithLogger(logger, "send transaction"))
	if err != nil {
		return nil, err
	}

	hash := tx.Hash().Hex()
	logger = logger.With(slog.String("hash", hash))

	// the transaction is on the network, the broadcast state must be written even if ctx is done
	recordCtx := context.WithoutCancel(ctx)
	err = retry.Run(recordCtx, p.retryPolicy, func(ctx context.Context) error {
		return p.store.SetBroadcast(ctx, id, hash)
	}, retry.WithLogger(logger, "set broadcast"), retry.WithStopOn(store.ErrNotUpdated))
	if err != nil {
		return nil, retry.Permanent(errors.Join(ErrBroadcastNotRecorded, fmt.Errorf("hash: %s", hash), err))
	}

	logger.Info("Transaction broadcast", slog.Uint64("gas", gasLimit), slog.String("maxFee", quote.MaxFeePerGas.String()), slog.String("maxPriorityFee", quote.MaxPriorityFeePerGas.String()))

	deadline := p.now().Add(p.confirmationTimeout)
	_, err = retry.Do(ctx, p.retryPolicy, func(ctx context.Context) (*types.Receipt, error) {
		return p.chain.WaitForConfirmation(ctx, tx.Hash(), deadline)
	}, retry.WithLogger(logger, "wait for confirmation"), retry.WithStopOn(chain.ErrConfirmationTimeout, chain.ErrTransactionReverted))
	if err != nil {
		if errors.Is(err, chain.ErrConfirmationTimeout) {
			logger.Info("Confirmation timed out, deferring to reconciler", slog.String("timeout", p.confirmationTimeout.String()))
			p.stats.drip(resultDeferred)
			return tx, nil
		}
		return tx, err
	}

	err = retry.Run(recordCtx, p.retryPolicy, func(ctx context.Context) error {
		return p.store.SetSent(ctx, id, hash)
	}, retry.WithLogger(logger, "set sent"), retry.WithStopOn(store.ErrNotUpdated))
	if err != nil {
		if errors.Is(err, store.ErrNotUpdated) {
			logger.Info("Request already advanced by reconciler")
			p.stats.drip(resultSent)
			return tx, nil
		}
		return tx, errors.Join(ErrFailedToRecordDelivery, err)
	}

	logger.Info("Transaction confirmed")
	p.stats.drip(resultSent)

	return tx, nil
}

func (p *Processor) estimateGas(ctx context.Context, logger *slog.Logger, to common.Address) uint64 {
	gas, err := retry.Do(ctx, p.retryPolicy, func(ctx context.Context) (uint64, error) {
		return p.chain.EstimateTransferGas(ctx, to, p.amount)
	}, retry.WithLogger(logger, "estimate gas"))
	if err != nil {
		logger.Warn("Gas estimation failed, using fallback gas limit", slog.Uint64("fallback", p.fallbackGasLimit), slog.String("err", err.Error()))
		return p.fallbackGasLimit
	}

	return gas
}

// handleFailure persists the failure and decides whether the work item is redelivered.
func (p *Processor) handleFailure(ctx context.Context, logger *slog.Logger, id int64, broadcast *types.Transaction, err error) error {
	logger = logger.With(slog.String("err", err.Error()), slog.String("kind", retry.Classify(err).String()))

	if errors.Is(err, ErrBroadcastNotRecorded) {
		logger.Error("Transaction sent but request state unknown, leaving request untouched")
		p.stats.drip(resultFailed)
		return nil
	}

	if broadcast == nil {
		// nothing was sent, so on shutdown the item is left for redelivery untouched
		if ctx.Err() != nil {
			logger.Warn("Pipeline interrupted before broadcast")
			return err
		}

		recordErr := p.markFailed(ctx, logger, id, err.Error())
		if errors.Is(recordErr, store.ErrNotUpdated) {
			logger.Warn("Request advanced by another delivery, leaving it untouched")
			p.stats.duplicate()
			return nil
		}

		if retry.IsRetryable(err) {
			logger.Warn("Drip failed, requesting redelivery")
			p.stats.drip(resultRetried)
			return err
		}

		logger.Error("Drip failed permanently")
		p.stats.drip(resultFailed)
		return nil
	}

	hash := broadcast.Hash().Hex()
	logger = logger.With(slog.String("hash", hash))

	if errors.Is(err, chain.ErrTransactionReverted) {
		recordErr := retry.Run(context.WithoutCancel(ctx), p.retryPolicy, func(ctx context.Context) error {
			return p.store.SetBroadcastFailed(ctx, id, hash, ReasonReverted)
		}, retry.WithStopOn(store.ErrNotUpdated))
		if recordErr != nil {
			logger.Error("Failed to mark reverted request as failed", slog.String("recordErr", recordErr.Error()))
		}
		logger.Error("Transaction reverted")
		p.stats.drip(resultFailed)
		return nil
	}

	// the transaction is on the network, resubmitting could pay twice
	logger.Warn("Confirmation failed after broadcast, deferring to reconciler")
	p.stats.drip(resultDeferred)
	return nil
}

// markFailed only moves queued or failed requests. ErrNotUpdated means the request was submitted meanwhile.
func (p *Processor) markFailed(ctx context.Context, logger *slog.Logger, id int64, reason string) error {
	err := retry.Run(context.WithoutCancel(ctx), p.retryPolicy, func(ctx context.Context) error {
		return p.store.SetFailed(ctx, id, reason)
	}, retry.WithLogger(logger, "set failed"), retry.WithStopOn(store.ErrNotUpdated))
	if err != nil && !errors.Is(err, store.ErrNotUpdated) {
		logger.Error("Failed to mark request as failed", slog.String("reason", reason), slog.String("recordErr", err.Error()))
	}

	return err
}
