package drip

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/evm-faucet/drip/internal/retry"
)

func WithReconcilerLogger(l *slog.Logger) func(*Reconciler) {
	return func(r *Reconciler) {
		r.logger = l
	}
}

func WithReconcilerStats(s *Stats) func(*Reconciler) {
	return func(r *Reconciler) {
		r.stats = s
	}
}

func WithReconcilerNow(nowFunc func() time.Time) func(*Reconciler) {
	return func(r *Reconciler) {
		r.now = nowFunc
	}
}

func WithReconcileInterval(d time.Duration) func(*Reconciler) {
	return func(r *Reconciler) {
		r.interval = d
	}
}

func WithBatchSize(size int) func(*Reconciler) {
	return func(r *Reconciler) {
		r.batchSize = size
	}
}

func WithMaxIterations(n int) func(*Reconciler) {
	return func(r *Reconciler) {
		r.maxIterations = n
	}
}

func WithReconcilerLockTTL(d time.Duration) func(*Reconciler) {
	return func(r *Reconciler) {
		r.lockTTL = d
	}
}

func WithReconcilerRetryPolicy(policy retry.Policy) func(*Reconciler) {
	return func(r *Reconciler) {
		r.retryPolicy = policy
	}
}

func WithStatCollectionInterval(d time.Duration) func(*Reconciler) {
	return func(r *Reconciler) {
		r.statCollectionInterval = d
	}
}

func WithReconcilerTracer(attr ...attribute.KeyValue) func(*Reconciler) {
	return func(r *Reconciler) {
		r.tracingEnabled = true
		if len(attr) > 0 {
			r.tracingAttributes = append(r.tracingAttributes, attr...)
		}
	}
}
