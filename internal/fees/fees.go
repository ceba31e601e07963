package fees

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/evm-faucet/drip/internal/chain"
)

const basisPoints = 10_000

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidMargin     = errors.New("fee safety margin must be at least 1")
)

// Quote is a fee suggestion with the safety margin applied.
type Quote struct {
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// WorstCaseCost is the highest fee the transaction can be charged.
func (q Quote) WorstCaseCost(gasLimit uint64) *big.Int {
	return new(big.Int).Mul(q.MaxFeePerGas, new(big.Int).SetUint64(gasLimit))
}

type Estimator struct {
	marginBps        *big.Int
	priorityFeeFloor *big.Int
	maxFeeFloor      *big.Int
}

// NewEstimator creates an estimator multiplying fees by margin. Floors replace values the network omits.
func NewEstimator(margin float64, priorityFeeFloor, maxFeeFloor *big.Int) (*Estimator, error) {
	if margin < 1 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return nil, errors.Join(ErrInvalidMargin, fmt.Errorf("margin: %v", margin))
	}

	return &Estimator{
		marginBps:        big.NewInt(int64(math.Round(margin * basisPoints))),
		priorityFeeFloor: new(big.Int).Set(priorityFeeFloor),
		maxFeeFloor:      new(big.Int).Set(maxFeeFloor),
	}, nil
}

// Suggest derives the priority fee and the fee cap from the current fee data.
func (e *Estimator) Suggest(data chain.FeeData) Quote {
	priority := e.priorityFeeFloor
	if data.MaxPriorityFeePerGas != nil {
		priority = data.MaxPriorityFeePerGas
	}

	maxFee := e.maxFeeFloor
	switch {
	case data.MaxFeePerGas != nil:
		maxFee = data.MaxFeePerGas
	case data.GasPrice != nil:
		maxFee = data.GasPrice
	}

	// the cap must cover the tip
	if maxFee.Cmp(priority) < 0 {
		maxFee = priority
	}

	return Quote{
		MaxFeePerGas:         e.applyMargin(maxFee),
		MaxPriorityFeePerGas: e.applyMargin(priority),
	}
}

func (e *Estimator) applyMargin(value *big.Int) *big.Int {
	scaled := new(big.Int).Mul(value, e.marginBps)
	return scaled.Quo(scaled, big.NewInt(basisPoints))
}

// EnsureBalanceCovers fails with ErrInsufficientFunds if balance < amount + fee.
func EnsureBalanceCovers(balance, amount, fee *big.Int) error {
	required := new(big.Int).Add(amount, fee)
	if balance.Cmp(required) < 0 {
		return errors.Join(ErrInsufficientFunds, fmt.Errorf("balance %s, required %s", balance.String(), required.String()))
	}

	return nil
}
