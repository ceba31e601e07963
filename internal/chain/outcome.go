package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomePending
	OutcomeSuccess
	OutcomeReverted
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "PENDING"
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeReverted:
		return "REVERTED"
	default:
		return "UNKNOWN"
	}
}

// TransactionOutcome looks up the receipt of hash. A transaction without receipt is pending.
func (c *Client) TransactionOutcome(ctx context.Context, hash common.Hash) (Outcome, error) {
	receipt, err := c.receipt(ctx, hash)
	if err != nil {
		return OutcomeUnknown, err
	}

	if receipt == nil {
		return OutcomePending, nil
	}

	return outcomeOf(receipt), nil
}

func outcomeOf(receipt *types.Receipt) Outcome {
	switch receipt.Status {
	case types.ReceiptStatusSuccessful:
		return OutcomeSuccess
	case types.ReceiptStatusFailed:
		return OutcomeReverted
	default:
		return OutcomeUnknown
	}
}
