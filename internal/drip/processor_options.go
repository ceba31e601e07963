package drip

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/evm-faucet/drip/internal/retry"
)

func WithLogger(l *slog.Logger) func(*Processor) {
	return func(p *Processor) {
		p.logger = l
	}
}

func WithNow(nowFunc func() time.Time) func(*Processor) {
	return func(p *Processor) {
		p.now = nowFunc
	}
}

func WithStats(s *Stats) func(*Processor) {
	return func(p *Processor) {
		p.stats = s
	}
}

func WithSignerLock(ttl time.Duration, maxAttempts int, baseDelay time.Duration) func(*Processor) {
	return func(p *Processor) {
		p.signerLockTTL = ttl
		p.signerLockAttempts = maxAttempts
		p.signerLockBaseDelay = baseDelay
	}
}

func WithRetryPolicy(policy retry.Policy) func(*Processor) {
	return func(p *Processor) {
		p.retryPolicy = policy
	}
}

func WithConfirmationTimeout(d time.Duration) func(*Processor) {
	return func(p *Processor) {
		p.confirmationTimeout = d
	}
}

func WithFallbackGasLimit(gas uint64) func(*Processor) {
	return func(p *Processor) {
		p.fallbackGasLimit = gas
	}
}

func WithTracer(attr ...attribute.KeyValue) func(*Processor) {
	return func(p *Processor) {
		p.tracingEnabled = true
		if len(attr) > 0 {
			p.tracingAttributes = append(p.tracingAttributes, attr...)
		}
	}
}
