package drip_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/evm-faucet/drip/internal/drip"
)

func TestDecodeWorkItem(t *testing.T) {
	tt := []struct {
		name string
		data string

		expectedItem  drip.WorkItem
		expectedError error
	}{
		{
			name: "valid",
			data: `{"requestId":42,"address":"0x70997970c51812dc3a010c7d01b50e0d17dc79c8","ip":"10.0.0.1"}`,

			expectedItem: drip.WorkItem{RequestID: 42, Address: "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", IP: "10.0.0.1"},
		},
		{
			name: "unknown fields are ignored",
			data: `{"requestId":7,"address":"0xabc","ip":"","captcha":"ok"}`,

			expectedItem: drip.WorkItem{RequestID: 7, Address: "0xabc"},
		},
		{
			name: "missing request id",
			data: `{"address":"0xabc"}`,

			expectedError: drip.ErrInvalidWorkItem,
		},
		{
			name: "negative request id",
			data: `{"requestId":-1}`,

			expectedError: drip.ErrInvalidWorkItem,
		},
		{
			name: "malformed",
			data: `{"requestId":`,

			expectedError: drip.ErrInvalidWorkItem,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			// when
			actual, err := drip.DecodeWorkItem([]byte(tc.data))

			// then
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedItem, actual)
		})
	}
}

func TestWorkItemEncode(t *testing.T) {
	// given
	item := drip.WorkItem{RequestID: 3, Address: "0xabc", IP: "::1"}

	// when
	data, err := item.Encode()

	// then
	require.NoError(t, err)
	require.JSONEq(t, `{"requestId":3,"address":"0xabc","ip":"::1"}`, string(data))

	decoded, err := drip.DecodeWorkItem(data)
	require.NoError(t, err)
	require.Equal(t, item, decoded)
}
