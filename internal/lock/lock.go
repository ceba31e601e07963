package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ccoveille/go-safecast"
	"github.com/google/uuid"

	"github.com/evm-faucet/drip/internal/cache"
)

const (
	signerKeyPrefix = "drip:lock:signer:"

	ReconcilerKey = "drip:lock:reconciler"

	backoffMultiplier    = 1.5
	backoffRandomization = 0.1
)

var (
	ErrLockHeld        = errors.New("lock is held by another owner")
	ErrLockFailed      = errors.New("failed to acquire lock")
	ErrInvalidAttempts = errors.New("max attempts must be greater than zero")
)

// SignerKey returns the lock key guarding the ordering space of the given signer address.
func SignerKey(address string) string {
	return signerKeyPrefix + address
}

// Mutex is a TTL-bound, token-owned mutual exclusion primitive over a shared key-value store.
type Mutex struct {
	store  cache.Store
	logger *slog.Logger
	token  func() string
}

func WithTokenGenerator(f func() string) func(*Mutex) {
	return func(m *Mutex) {
		m.token = f
	}
}

func New(store cache.Store, logger *slog.Logger, opts ...func(*Mutex)) *Mutex {
	m := &Mutex{
		store:  store,
		logger: logger.With(slog.String("module", "lock")),
		token:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Acquire makes a single non-blocking attempt. It returns ErrLockHeld if another owner holds the key.
func (m *Mutex) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := m.token()

	ok, err := m.store.SetIfAbsent(ctx, key, token, ttl)
	if err != nil {
		return "", errors.Join(ErrLockFailed, err)
	}

	if !ok {
		return "", ErrLockHeld
	}

	return token, nil
}

// AcquireWithBackoff retries Acquire up to maxAttempts times with a geometrically growing, jittered delay.
func (m *Mutex) AcquireWithBackoff(ctx context.Context, key string, ttl time.Duration, maxAttempts int, baseDelay time.Duration) (string, error) {
	if maxAttempts <= 0 {
		return "", ErrInvalidAttempts
	}

	retries, err := safecast.ToUint64(maxAttempts - 1)
	if err != nil {
		return "", err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = baseDelay
	expBackoff.Multiplier = backoffMultiplier
	expBackoff.RandomizationFactor = backoffRandomization
	expBackoff.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expBackoff, retries), ctx)

	attempt := 0
	token, err := backoff.RetryNotifyWithData(func() (string, error) {
		attempt++
		token, acquireErr := m.Acquire(ctx, key, ttl)
		if acquireErr != nil && !errors.Is(acquireErr, ErrLockHeld) {
			return "", backoff.Permanent(acquireErr)
		}

		return token, acquireErr
	}, policy, func(err error, next time.Duration) {
		m.logger.Debug("Lock busy, retrying", slog.String("key", key), slog.Int("attempt", attempt), slog.String("next", next.String()))
	})
	if err != nil {
		return "", fmt.Errorf("key %s after %d attempts: %w", key, attempt, err)
	}

	return token, nil
}

// Release deletes the key only if it still holds token. Failures are logged, the TTL recovers a stale lock.
func (m *Mutex) Release(ctx context.Context, key string, token string) {
	if token == "" {
		return
	}

	released, err := m.store.DeleteIfEquals(context.WithoutCancel(ctx), key, token)
	if err != nil {
		m.logger.Warn("Failed to release lock", slog.String("key", key), slog.String("err", err.Error()))
		return
	}

	if !released {
		m.logger.Warn("Lock was not held by owner on release", slog.String("key", key))
	}
}
