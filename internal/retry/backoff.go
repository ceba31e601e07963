package retry

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	MaxDelay = 15 * time.Second

	jitterMin = 1.10
	jitterMax = 1.25
)

// exponentialJitter grows the delay as base*2^n, caps it at MaxDelay and scales it by a factor in [1.10, 1.25].
type exponentialJitter struct {
	base    time.Duration
	attempt int
	jitter  func() float64
}

func newExponentialJitter(base time.Duration, jitter func() float64) *exponentialJitter {
	if jitter == nil {
		jitter = defaultJitter
	}

	return &exponentialJitter{
		base:   base,
		jitter: jitter,
	}
}

func defaultJitter() float64 {
	return jitterMin + rand.Float64()*(jitterMax-jitterMin) // #nosec G404
}

func (e *exponentialJitter) NextBackOff() time.Duration {
	delay := Delay(e.base, e.attempt, e.jitter())
	e.attempt++

	return delay
}

func (e *exponentialJitter) Reset() {
	e.attempt = 0
}

// Delay returns min(base*2^attempt, MaxDelay) scaled by the jitter factor.
func Delay(base time.Duration, attempt int, jitter float64) time.Duration {
	raw := float64(base) * math.Pow(2, float64(attempt))
	if raw > float64(MaxDelay) {
		raw = float64(MaxDelay)
	}

	return time.Duration(raw * jitter)
}
