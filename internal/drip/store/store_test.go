package store

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateReason(t *testing.T) {
	tt := []struct {
		name   string
		reason string

		expectedLength int
	}{
		{
			name:           "short",
			reason:         "transaction reverted",
			expectedLength: 20,
		},
		{
			name:           "exactly max",
			reason:         strings.Repeat("a", MaxFailureReasonLength),
			expectedLength: MaxFailureReasonLength,
		},
		{
			name:           "long ascii",
			reason:         strings.Repeat("a", 1000),
			expectedLength: MaxFailureReasonLength,
		},
		{
			name:           "long multi byte",
			reason:         strings.Repeat("ü", 1000),
			expectedLength: MaxFailureReasonLength,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			actual := TruncateReason(tc.reason)

			// then
			assert.Equal(t, tc.expectedLength, utf8.RuneCountInString(actual))
			assert.True(t, utf8.ValidString(actual))
			assert.True(t, strings.HasPrefix(tc.reason, actual))
		})
	}
}
