package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const (
	defaultPollInterval   = 2 * time.Second
	defaultRequestTimeout = 15 * time.Second
)

var (
	ErrInvalidSignerKey    = errors.New("invalid signer key")
	ErrChainIDMismatch     = errors.New("chain id of rpc endpoint does not match configuration")
	ErrConfirmationTimeout = errors.New("confirmation wait timed out")
	ErrTransactionReverted = errors.New("transaction execution reverted")
	ErrFailedToSign        = errors.New("failed to sign transaction")
)

// EthClient is the part of the JSON-RPC surface used by Client.
// Both *ethclient.Client and the simulated backend client satisfy it.
type EthClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// FeeData is the current fee market view. Fields are nil when the network does not report them.
type FeeData struct {
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
}

// Client submits transfers from the single custodial signer.
type Client struct {
	eth            EthClient
	logger         *slog.Logger
	key            *ecdsa.PrivateKey
	address        common.Address
	chainID        *big.Int
	signer         types.Signer
	pollInterval   time.Duration
	requestTimeout time.Duration
}

func WithPollInterval(d time.Duration) func(*Client) {
	return func(c *Client) {
		c.pollInterval = d
	}
}

func WithRequestTimeout(d time.Duration) func(*Client) {
	return func(c *Client) {
		c.requestTimeout = d
	}
}

func WithLogger(logger *slog.Logger) func(*Client) {
	return func(c *Client) {
		c.logger = logger
	}
}

// Dial connects to the rpc endpoint.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	c, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcURL, err)
	}

	return c, nil
}

// New creates a client signing with the hex encoded private key. A zero chainID is read from the endpoint.
func New(ctx context.Context, eth EthClient, signerKeyHex string, chainID int64, opts ...func(*Client)) (*Client, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(signerKeyHex, "0x"))
	if err != nil {
		return nil, errors.Join(ErrInvalidSignerKey, err)
	}

	c := &Client{
		eth:            eth,
		logger:         slog.Default(),
		key:            key,
		address:        crypto.PubkeyToAddress(key.PublicKey),
		pollInterval:   defaultPollInterval,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(slog.String("module", "chain"))

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	remoteID, err := eth.ChainID(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	if chainID != 0 && remoteID.Int64() != chainID {
		return nil, errors.Join(ErrChainIDMismatch, fmt.Errorf("configured %d, endpoint %s", chainID, remoteID.String()))
	}

	c.chainID = remoteID
	c.signer = types.LatestSignerForChainID(remoteID)

	return c, nil
}

func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.requestTimeout)
}

func (c *Client) SignerAddress() common.Address {
	return c.address
}

func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// FeeData returns the gas price, and for EIP-1559 networks max fee = 2*baseFee + tip.
func (c *Client) FeeData(ctx context.Context) (FeeData, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	var data FeeData

	head, err := c.eth.HeaderByNumber(callCtx, nil)
	if err != nil {
		return FeeData{}, fmt.Errorf("failed to get latest header: %w", err)
	}

	gasPrice, err := c.eth.SuggestGasPrice(callCtx)
	if err != nil {
		return FeeData{}, fmt.Errorf("failed to get gas price: %w", err)
	}
	data.GasPrice = gasPrice

	if head.BaseFee == nil {
		return data, nil
	}

	tip, err := c.eth.SuggestGasTipCap(callCtx)
	if err != nil {
		return FeeData{}, fmt.Errorf("failed to get gas tip cap: %w", err)
	}

	data.MaxPriorityFeePerGas = tip
	data.MaxFeePerGas = new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)

	return data, nil
}

func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	balance, err := c.eth.BalanceAt(callCtx, c.address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance of %s: %w", c.address.Hex(), err)
	}

	return balance, nil
}

func (c *Client) EstimateTransferGas(ctx context.Context, to common.Address, amount *big.Int) (uint64, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	gas, err := c.eth.EstimateGas(callCtx, ethereum.CallMsg{
		From:  c.address,
		To:    &to,
		Value: amount,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to estimate gas: %w", err)
	}

	return gas, nil
}

// SignTransfer builds and signs a dynamic fee transfer using the signer's pending nonce.
// The caller must hold the signer lock until the transaction has been sent.
func (c *Client) SignTransfer(ctx context.Context, to common.Address, amount *big.Int, gasLimit uint64, maxFee, maxPriorityFee *big.Int) (*types.Transaction, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	nonce, err := c.eth.PendingNonceAt(callCtx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending nonce: %w", err)
	}

	tx, err := types.SignNewTx(c.key, c.signer, &types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: maxPriorityFee,
		GasFeeCap: maxFee,
		Gas:       gasLimit,
		To:        &to,
		Value:     amount,
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToSign, err)
	}

	return tx, nil
}

// SendTransaction submits a signed transaction. A node that already knows the transaction counts as success.
func (c *Client) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	err := c.eth.SendTransaction(callCtx, tx)
	if err != nil {
		if isAlreadyKnown(err) {
			c.logger.Info("Transaction already known", slog.String("hash", tx.Hash().Hex()))
			return nil
		}
		return fmt.Errorf("failed to send transaction %s: %w", tx.Hash().Hex(), err)
	}

	return nil
}

func isAlreadyKnown(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already known") || strings.Contains(msg, "known transaction")
}

// WaitForConfirmation polls for the receipt until it is included or the deadline passes.
// It returns ErrConfirmationTimeout at the deadline and ErrTransactionReverted for a failed receipt.
func (c *Client) WaitForConfirmation(ctx context.Context, hash common.Hash, deadline time.Time) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	timeout := time.NewTimer(time.Until(deadline))
	defer timeout.Stop()

	for {
		receipt, err := c.receipt(ctx, hash)
		if err != nil {
			return nil, err
		}

		if receipt != nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, errors.Join(ErrTransactionReverted, fmt.Errorf("hash: %s", hash.Hex()))
			}
			return receipt, nil
		}

		if !time.Now().Before(deadline) {
			return nil, ErrConfirmationTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout.C:
			return nil, ErrConfirmationTimeout
		case <-ticker.C:
		}
	}
}

// receipt returns nil without error if the transaction is not mined yet.
func (c *Client) receipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	receipt, err := c.eth.TransactionReceipt(callCtx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get receipt of %s: %w", hash.Hex(), err)
	}

	return receipt, nil
}
