package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"

	"github.com/evm-faucet/drip/config"
	"github.com/evm-faucet/drip/internal/cache"
	"github.com/evm-faucet/drip/internal/chain"
	"github.com/evm-faucet/drip/internal/drip/store/postgresql"
	"github.com/evm-faucet/drip/internal/lock"
)

const precheckTimeout = 10 * time.Second

var ErrPrecheckFailed = errors.New("dependency precheck failed")

// Clients holds the connections shared by the worker and the reconciler.
type Clients struct {
	Store  *postgresql.PostgreSQL
	Cache  cache.Store
	Locker *lock.Mutex
	Eth    *ethclient.Client
	Chain  *chain.Client
}

func NewClients(ctx context.Context, logger *slog.Logger, dripConfig *config.DripConfig) (*Clients, error) {
	c := &Clients{}

	var err error

	c.Store, err = NewStore(dripConfig.Db)
	if err != nil {
		return nil, err
	}

	c.Cache, err = cache.NewCacheStore(dripConfig.Cache)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create cache store: %v", err)
	}

	c.Locker = lock.New(c.Cache, logger)

	c.Eth, err = chain.Dial(ctx, dripConfig.Chain.RPCURL)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Chain, err = chain.New(ctx, c.Eth, dripConfig.Chain.SignerKey, dripConfig.Chain.ChainID,
		chain.WithLogger(logger),
		chain.WithRequestTimeout(dripConfig.Chain.RequestTimeout),
		chain.WithPollInterval(dripConfig.Drip.ConfirmationPollInterval),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create chain client: %v", err)
	}

	err = c.Precheck(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	logger.Info("Clients ready", slog.String("signer", c.Chain.SignerAddress().Hex()), slog.String("chainID", c.Chain.ChainID().String()))

	return c, nil
}

func NewStore(dbConfig *config.DbConfig) (*postgresql.PostgreSQL, error) {
	if dbConfig == nil || dbConfig.Postgres == nil {
		return nil, errors.New("postgres config missing")
	}

	cfg := dbConfig.Postgres
	s, err := postgresql.New(cfg.DSN(), cfg.MaxIdleConns, cfg.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres DB: %v", err)
	}

	return s, nil
}

// Precheck verifies that database and cache answer before any work is taken.
func (c *Clients) Precheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, precheckTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.Store.Ping(gctx)
	})
	g.Go(func() error {
		return c.Cache.Ping(gctx)
	})

	err := g.Wait()
	if err != nil {
		return errors.Join(ErrPrecheckFailed, err)
	}

	return nil
}

func (c *Clients) Close() {
	if c.Eth != nil {
		c.Eth.Close()
	}

	if c.Store != nil {
		_ = c.Store.Close()
	}

	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
