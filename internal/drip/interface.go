package drip

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/evm-faucet/drip/internal/chain"
)

//go:generate moq -pkg mocks -out ./mocks/chain_client_mock.go . ChainClient
//go:generate moq -pkg mocks -out ./mocks/outcome_client_mock.go . OutcomeClient
//go:generate moq -pkg mocks -out ./mocks/locker_mock.go . Locker
//go:generate moq -pkg mocks -out ./mocks/counter_mock.go . Counter

// ChainClient is the network surface used by the submission pipeline.
type ChainClient interface {
	SignerAddress() common.Address
	FeeData(ctx context.Context) (chain.FeeData, error)
	Balance(ctx context.Context) (*big.Int, error)
	EstimateTransferGas(ctx context.Context, to common.Address, amount *big.Int) (uint64, error)
	SignTransfer(ctx context.Context, to common.Address, amount *big.Int, gasLimit uint64, maxFee, maxPriorityFee *big.Int) (*types.Transaction, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	WaitForConfirmation(ctx context.Context, hash common.Hash, deadline time.Time) (*types.Receipt, error)
}

// OutcomeClient is the network surface used by the reconciler.
type OutcomeClient interface {
	TransactionOutcome(ctx context.Context, hash common.Hash) (chain.Outcome, error)
}

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	AcquireWithBackoff(ctx context.Context, key string, ttl time.Duration, maxAttempts int, baseDelay time.Duration) (string, error)
	Release(ctx context.Context, key string, token string)
}

type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
}
