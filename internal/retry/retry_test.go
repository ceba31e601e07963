package retry

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errConnReset = errors.New("connection reset by peer")
	errReverted  = errors.New("execution reverted")
	errWaitTimer = errors.New("confirmation wait timed out")
)

func fixedJitter() float64 { return jitterMin }

func TestDo(t *testing.T) {
	tt := []struct {
		name       string
		maxRetries int
		failures   int
		err        error
		stopOn     []error

		expectedCalls int
		expectedErr   error
	}{
		{
			name:          "success at first attempt",
			maxRetries:    5,
			expectedCalls: 1,
		},
		{
			name:          "fails less than max retries then succeeds",
			maxRetries:    5,
			failures:      4,
			err:           errConnReset,
			expectedCalls: 5,
		},
		{
			name:          "fails max retries times",
			maxRetries:    5,
			failures:      5,
			err:           errConnReset,
			expectedCalls: 5,
			expectedErr:   errConnReset,
		},
		{
			name:          "fails more than max retries times",
			maxRetries:    3,
			failures:      10,
			err:           errConnReset,
			expectedCalls: 3,
			expectedErr:   errConnReset,
		},
		{
			name:          "fail fast error is not retried",
			maxRetries:    5,
			failures:      5,
			err:           errReverted,
			expectedCalls: 1,
			expectedErr:   errReverted,
		},
		{
			name:          "unknown error is not retried",
			maxRetries:    5,
			failures:      5,
			err:           errors.New("unexpected"),
			expectedCalls: 1,
		},
		{
			name:          "stop on error",
			maxRetries:    5,
			failures:      5,
			err:           errWaitTimer,
			stopOn:        []error{errWaitTimer},
			expectedCalls: 1,
			expectedErr:   errWaitTimer,
		},
		{
			name:          "zero max retries means a single attempt",
			maxRetries:    0,
			failures:      1,
			err:           errConnReset,
			expectedCalls: 1,
			expectedErr:   errConnReset,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// given
			calls := 0
			op := func(_ context.Context) (string, error) {
				calls++
				if calls <= tc.failures {
					return "", tc.err
				}
				return "0x111", nil
			}

			opts := []Option{WithJitter(fixedJitter), WithLogger(slog.Default(), "test")}
			if len(tc.stopOn) > 0 {
				opts = append(opts, WithStopOn(tc.stopOn...))
			}

			// when
			res, err := Do(context.Background(), Policy{MaxRetries: tc.maxRetries, BaseDelay: time.Millisecond}, op, opts...)

			// then
			assert.Equal(t, tc.expectedCalls, calls)
			if tc.failures >= tc.expectedCalls && tc.err != nil {
				require.Error(t, err)
				if tc.expectedErr != nil {
					require.ErrorIs(t, err, tc.expectedErr)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "0x111", res)
		})
	}
}

func TestDoCanceled(t *testing.T) {
	// given
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	// when
	err := Run(ctx, Policy{MaxRetries: 10, BaseDelay: time.Hour}, func(_ context.Context) error {
		calls++
		cancel()
		return errConnReset
	})

	// then
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDelay(t *testing.T) {
	tt := []struct {
		name    string
		base    time.Duration
		attempt int
		jitter  float64

		expected time.Duration
	}{
		{
			name:     "first retry",
			base:     500 * time.Millisecond,
			attempt:  0,
			jitter:   1.10,
			expected: 550 * time.Millisecond,
		},
		{
			name:     "third retry",
			base:     500 * time.Millisecond,
			attempt:  2,
			jitter:   1.25,
			expected: 2500 * time.Millisecond,
		},
		{
			name:     "capped",
			base:     500 * time.Millisecond,
			attempt:  10,
			jitter:   1.10,
			expected: 16500 * time.Millisecond,
		},
		{
			name:     "large attempt does not overflow",
			base:     time.Second,
			attempt:  200,
			jitter:   1.25,
			expected: 18750 * time.Millisecond,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, float64(tc.expected), float64(Delay(tc.base, tc.attempt, tc.jitter)), float64(time.Microsecond))
		})
	}
}

func TestDefaultJitterBounds(t *testing.T) {
	for range 1000 {
		j := defaultJitter()
		assert.GreaterOrEqual(t, j, jitterMin)
		assert.LessOrEqual(t, j, jitterMax)
	}
}
