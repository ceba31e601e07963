package drip_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/chain"
	"github.com/evm-faucet/drip/internal/drip"
	"github.com/evm-faucet/drip/internal/drip/mocks"
	"github.com/evm-faucet/drip/internal/drip/store"
	storeMocks "github.com/evm-faucet/drip/internal/drip/store/mocks"
	"github.com/evm-faucet/drip/internal/lock"
)

func hashOf(i int) string {
	return common.BigToHash(big.NewInt(int64(i))).Hex()
}

func broadcastRows(n int) []*store.Request {
	rows := make([]*store.Request, 0, n)
	for i := range n {
		rows = append(rows, &store.Request{
			ID:        int64(i + 1),
			Status:    store.StatusBroadcast,
			TxHash:    hashOf(i + 1),
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
	}

	return rows
}

// pagedStore serves rows through GetBroadcast honoring cursor and limit.
func pagedStore(rows []*store.Request) *storeMocks.RequestStoreMock {
	return &storeMocks.RequestStoreMock{
		GetBroadcastFunc: func(_ context.Context, after store.Cursor, limit int) ([]*store.Request, error) {
			page := make([]*store.Request, 0, limit)
			for _, r := range rows {
				if len(page) == limit {
					break
				}
				if !after.CreatedAt.IsZero() && !r.CreatedAt.After(after.CreatedAt) && !(r.CreatedAt.Equal(after.CreatedAt) && r.ID > after.ID) {
					continue
				}
				page = append(page, r)
			}
			return page, nil
		},
		SetSentFunc:            func(_ context.Context, _ int64, _ string) error { return nil },
		SetBroadcastFailedFunc: func(_ context.Context, _ int64, _ string, _ string) error { return nil },
	}
}

func acquiringLocker() *mocks.LockerMock {
	return &mocks.LockerMock{
		AcquireFunc: func(_ context.Context, key string, _ time.Duration) (string, error) {
			if key != lock.ReconcilerKey {
				return "", fmt.Errorf("unexpected key %s", key)
			}
			return "token", nil
		},
		ReleaseFunc: func(_ context.Context, _ string, _ string) {},
	}
}

func newTestReconciler(t *testing.T, s store.RequestStore, c drip.OutcomeClient, l drip.Locker, counter drip.Counter, opts ...func(*drip.Reconciler)) *drip.Reconciler {
	t.Helper()

	opts = append([]func(*drip.Reconciler){drip.WithReconcilerRetryPolicy(testPolicy)}, opts...)
	sut, err := drip.NewReconciler(s, c, l, counter, opts...)
	require.NoError(t, err)

	return sut
}

func TestReconcilerReconcile(t *testing.T) {
	t.Run("resolves missing hash, success and revert", func(t *testing.T) {
		// given
		rows := broadcastRows(3)
		rows[0].TxHash = ""

		storeMock := pagedStore(rows)
		outcomes := map[string]chain.Outcome{
			rows[1].TxHash: chain.OutcomeSuccess,
			rows[2].TxHash: chain.OutcomeReverted,
		}
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, hash common.Hash) (chain.Outcome, error) {
				return outcomes[hash.Hex()], nil
			},
		}
		lockerMock := acquiringLocker()
		stats := drip.NewStats()

		sut := newTestReconciler(t, storeMock, chainMock, lockerMock, &mocks.CounterMock{}, drip.WithReconcilerStats(stats))

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, drip.CycleResult{Batches: 1, Sent: 1, Failed: 2}, result)

		require.Len(t, chainMock.TransactionOutcomeCalls(), 2)

		failed := storeMock.SetBroadcastFailedCalls()
		require.Len(t, failed, 2)
		require.Equal(t, int64(1), failed[0].ID)
		require.Empty(t, failed[0].TxHash)
		require.Equal(t, drip.ReasonMissingHash, failed[0].Reason)
		require.Equal(t, int64(3), failed[1].ID)
		require.Equal(t, rows[2].TxHash, failed[1].TxHash)
		require.Equal(t, drip.ReasonReverted, failed[1].Reason)

		sent := storeMock.SetSentCalls()
		require.Len(t, sent, 1)
		require.Equal(t, int64(2), sent[0].ID)
		require.Equal(t, rows[1].TxHash, sent[0].TxHash)

		require.Len(t, storeMock.GetBroadcastCalls(), 1)
		require.Len(t, lockerMock.ReleaseCalls(), 1)
		require.Equal(t, 2.0, testutil.ToFloat64(stats.ReconcilerResolved.WithLabelValues("failed")))
		require.Equal(t, 1.0, testutil.ToFloat64(stats.ReconcilerResolved.WithLabelValues("sent")))
	})

	t.Run("pending and unknown outcomes are left for the next cycle", func(t *testing.T) {
		// given
		rows := broadcastRows(3)
		storeMock := pagedStore(rows)
		outcomes := map[string]chain.Outcome{
			rows[0].TxHash: chain.OutcomePending,
			rows[1].TxHash: chain.OutcomeUnknown,
		}
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, hash common.Hash) (chain.Outcome, error) {
				if hash.Hex() == rows[2].TxHash {
					return chain.OutcomeUnknown, errors.New("invalid argument 0: hex string has length 2")
				}
				return outcomes[hash.Hex()], nil
			},
		}

		sut := newTestReconciler(t, storeMock, chainMock, acquiringLocker(), &mocks.CounterMock{})

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, drip.CycleResult{Batches: 1, Pending: 1, Unknown: 1, Errored: 1}, result)
		require.Empty(t, storeMock.SetSentCalls())
		require.Empty(t, storeMock.SetBroadcastFailedCalls())
	})

	t.Run("pages through broadcast requests", func(t *testing.T) {
		// given
		rows := broadcastRows(5)
		storeMock := pagedStore(rows)
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, _ common.Hash) (chain.Outcome, error) {
				return chain.OutcomePending, nil
			},
		}

		sut := newTestReconciler(t, storeMock, chainMock, acquiringLocker(), &mocks.CounterMock{}, drip.WithBatchSize(2))

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, 3, result.Batches)
		require.Equal(t, 5, result.Pending)

		calls := storeMock.GetBroadcastCalls()
		require.Len(t, calls, 3)
		require.Equal(t, store.Cursor{}, calls[0].After)
		require.Equal(t, rows[1].Cursor(), calls[1].After)
		require.Equal(t, rows[3].Cursor(), calls[2].After)
	})

	t.Run("stops after max iterations", func(t *testing.T) {
		// given
		rows := broadcastRows(10)
		storeMock := pagedStore(rows)
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, _ common.Hash) (chain.Outcome, error) {
				return chain.OutcomePending, nil
			},
		}

		sut := newTestReconciler(t, storeMock, chainMock, acquiringLocker(), &mocks.CounterMock{}, drip.WithBatchSize(2), drip.WithMaxIterations(2))

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, 2, result.Batches)
		require.Len(t, storeMock.GetBroadcastCalls(), 2)
		require.Len(t, chainMock.TransactionOutcomeCalls(), 4)
	})

	t.Run("stops on empty batch", func(t *testing.T) {
		// given
		storeMock := pagedStore(broadcastRows(2))
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, _ common.Hash) (chain.Outcome, error) {
				return chain.OutcomeSuccess, nil
			},
		}

		sut := newTestReconciler(t, storeMock, chainMock, acquiringLocker(), &mocks.CounterMock{}, drip.WithBatchSize(2))

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, 1, result.Batches)
		require.Equal(t, 2, result.Sent)
		require.Len(t, storeMock.GetBroadcastCalls(), 2)
	})

	t.Run("skips cycle if lock is held", func(t *testing.T) {
		// given
		storeMock := pagedStore(broadcastRows(1))
		lockerMock := &mocks.LockerMock{
			AcquireFunc: func(_ context.Context, _ string, _ time.Duration) (string, error) {
				return "", lock.ErrLockHeld
			},
		}
		counterMock := &mocks.CounterMock{
			IncrFunc: func(_ context.Context, key string) (int64, error) {
				assert.Equal(t, drip.ReconcilerSkipCounterKey, key)
				return 1, nil
			},
		}
		stats := drip.NewStats()

		sut := newTestReconciler(t, storeMock, &mocks.OutcomeClientMock{}, lockerMock, counterMock, drip.WithReconcilerStats(stats))

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.True(t, result.Skipped)
		require.Len(t, counterMock.IncrCalls(), 1)
		require.Empty(t, storeMock.GetBroadcastCalls())
		require.Equal(t, 1.0, testutil.ToFloat64(stats.ReconcilerSkipped))
	})

	t.Run("lock failure aborts cycle", func(t *testing.T) {
		// given
		storeMock := pagedStore(broadcastRows(1))
		lockerMock := &mocks.LockerMock{
			AcquireFunc: func(_ context.Context, _ string, _ time.Duration) (string, error) {
				return "", lock.ErrLockFailed
			},
		}

		sut := newTestReconciler(t, storeMock, &mocks.OutcomeClientMock{}, lockerMock, &mocks.CounterMock{})

		// when
		_, err := sut.Reconcile(context.Background())

		// then
		require.ErrorIs(t, err, lock.ErrLockFailed)
		require.Empty(t, storeMock.GetBroadcastCalls())
	})

	t.Run("store failure aborts cycle and releases lock", func(t *testing.T) {
		// given
		storeMock := &storeMocks.RequestStoreMock{
			GetBroadcastFunc: func(_ context.Context, _ store.Cursor, _ int) ([]*store.Request, error) {
				return nil, errConnReset
			},
		}
		lockerMock := acquiringLocker()

		sut := newTestReconciler(t, storeMock, &mocks.OutcomeClientMock{}, lockerMock, &mocks.CounterMock{})

		// when
		_, err := sut.Reconcile(context.Background())

		// then
		require.ErrorIs(t, err, errConnReset)
		require.Len(t, storeMock.GetBroadcastCalls(), testPolicy.MaxRetries)
		require.Len(t, lockerMock.ReleaseCalls(), 1)
	})

	t.Run("ends sweep before lock expires", func(t *testing.T) {
		// given
		storeMock := pagedStore(broadcastRows(5))
		lockerMock := acquiringLocker()

		// each outcome lookup takes 30s of a 100s lock, the sweep budget is 75s
		clock := now
		chainMock := &mocks.OutcomeClientMock{
			TransactionOutcomeFunc: func(_ context.Context, _ common.Hash) (chain.Outcome, error) {
				clock = clock.Add(30 * time.Second)
				return chain.OutcomeSuccess, nil
			},
		}

		sut := newTestReconciler(t, storeMock, chainMock, lockerMock, &mocks.CounterMock{},
			drip.WithBatchSize(10),
			drip.WithReconcilerLockTTL(100*time.Second),
			drip.WithReconcilerNow(func() time.Time { return clock }),
		)

		// when
		result, err := sut.Reconcile(context.Background())

		// then
		require.NoError(t, err)
		require.Equal(t, drip.CycleResult{Batches: 1, Sent: 3, Truncated: true}, result)
		require.Len(t, chainMock.TransactionOutcomeCalls(), 3)
		require.Len(t, storeMock.SetSentCalls(), 3)
		require.Len(t, lockerMock.ReleaseCalls(), 1)
	})
}

func TestReconcilerStart(t *testing.T) {
	// given
	var mu sync.Mutex
	counts := map[store.Status]int64{store.StatusQueued: 3, store.StatusSent: 7}

	storeMock := pagedStore(nil)
	storeMock.CountByStatusFunc = func(_ context.Context) (map[store.Status]int64, error) {
		mu.Lock()
		defer mu.Unlock()
		return counts, nil
	}
	stats := drip.NewStats()

	sut := newTestReconciler(t, storeMock, &mocks.OutcomeClientMock{}, acquiringLocker(), &mocks.CounterMock{},
		drip.WithReconcileInterval(10*time.Millisecond),
		drip.WithStatCollectionInterval(10*time.Millisecond),
		drip.WithReconcilerStats(stats),
	)

	// when
	sut.Start()

	// then
	require.Eventually(t, func() bool {
		return len(storeMock.GetBroadcastCalls()) >= 2 && len(storeMock.CountByStatusCalls()) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	sut.Shutdown()

	require.Equal(t, 3.0, testutil.ToFloat64(stats.RequestsByStatus.WithLabelValues("queued")))
	require.Equal(t, 7.0, testutil.ToFloat64(stats.RequestsByStatus.WithLabelValues("sent")))
}

func TestNewReconciler(t *testing.T) {
	tt := []struct {
		name    string
		store   store.RequestStore
		chain   drip.OutcomeClient
		locker  drip.Locker
		counter drip.Counter

		expectedError error
	}{
		{
			name:    "valid",
			store:   &storeMocks.RequestStoreMock{},
			chain:   &mocks.OutcomeClientMock{},
			locker:  &mocks.LockerMock{},
			counter: &mocks.CounterMock{},
		},
		{
			name:    "no outcome client",
			store:   &storeMocks.RequestStoreMock{},
			locker:  &mocks.LockerMock{},
			counter: &mocks.CounterMock{},

			expectedError: drip.ErrOutcomeClientNil,
		},
		{
			name:   "no counter",
			store:  &storeMocks.RequestStoreMock{},
			chain:  &mocks.OutcomeClientMock{},
			locker: &mocks.LockerMock{},

			expectedError: drip.ErrCounterNil,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			_, err := drip.NewReconciler(tc.store, tc.chain, tc.locker, tc.counter)

			// then
			require.ErrorIs(t, err, tc.expectedError)
		})
	}
}
