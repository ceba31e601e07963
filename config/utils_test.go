package config

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseWei(t *testing.T) {
	testCases := []struct {
		name          string
		amount        string
		expectedValue *big.Int
		expectedError error
	}{
		{
			name:          "0.01 ether",
			amount:        "10000000000000000",
			expectedValue: big.NewInt(10000000000000000),
		},
		{
			name:          "zero",
			amount:        "0",
			expectedValue: big.NewInt(0),
		},
		{
			name:          "negative",
			amount:        "-1",
			expectedError: ErrInvalidWeiAmount,
		},
		{
			name:          "not a number",
			amount:        "0.01",
			expectedError: ErrInvalidWeiAmount,
		},
		{
			name:          "empty",
			amount:        "",
			expectedError: ErrInvalidWeiAmount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			value, err := ParseWei(tc.amount)

			// then
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, tc.expectedValue.Cmp(value))
		})
	}
}

func Test_DSN(t *testing.T) {
	// given
	cfg := getDefaultDbConfig().Postgres

	// when
	dsn := cfg.DSN()

	// then
	assert.Equal(t, "user=drip password=drip dbname=drip host=localhost port=5432 sslmode=disable", dsn)
}
