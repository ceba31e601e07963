package nats_jetstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedeliveryDelay(t *testing.T) {
	backoff := []time.Duration{time.Second, 10 * time.Second, time.Minute}

	tt := []struct {
		name      string
		backoff   []time.Duration
		delivered uint64

		expectedDelay time.Duration
	}{
		{
			name:      "no backoff",
			delivered: 3,

			expectedDelay: 0,
		},
		{
			name:      "first delivery",
			backoff:   backoff,
			delivered: 1,

			expectedDelay: time.Second,
		},
		{
			name:      "unknown delivery count",
			backoff:   backoff,
			delivered: 0,

			expectedDelay: time.Second,
		},
		{
			name:      "third delivery",
			backoff:   backoff,
			delivered: 3,

			expectedDelay: time.Minute,
		},
		{
			name:      "beyond backoff list repeats last delay",
			backoff:   backoff,
			delivered: 10,

			expectedDelay: time.Minute,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			actual := RedeliveryDelay(tc.backoff, tc.delivered)

			// then
			require.Equal(t, tc.expectedDelay, actual)
		})
	}
}

func TestWithConcurrency(t *testing.T) {
	c := &Client{}

	require.ErrorIs(t, WithConcurrency(0)(c), ErrInvalidConcurrency)
	require.NoError(t, WithConcurrency(8)(c))
	require.Equal(t, 8, c.concurrency)
}
