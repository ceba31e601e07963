package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewLogger(t *testing.T) {
	testCases := []struct {
		name          string
		logLevel      string
		logFormat     string
		expectedLevel slog.Level
		expectedError error
	}{
		{
			name:          "text logger",
			logLevel:      "INFO",
			logFormat:     "text",
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "json logger, lower case level",
			logLevel:      "debug",
			logFormat:     "json",
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "tint logger",
			logLevel:      "WARN",
			logFormat:     "tint",
			expectedLevel: slog.LevelWarn,
		},
		{
			name:          "invalid log format",
			logLevel:      "INFO",
			logFormat:     "invalid format",
			expectedError: ErrLoggerInvalidLogFormat,
		},
		{
			name:          "invalid log level",
			logLevel:      "INVALID_LEVEL",
			logFormat:     "text",
			expectedError: ErrLoggerInvalidLogLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			sut, err := NewLogger("drip-test", tc.logLevel, tc.logFormat)

			// then
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				require.Nil(t, sut)
				return
			}

			require.NoError(t, err)
			assert.True(t, sut.Enabled(context.Background(), tc.expectedLevel))
			assert.False(t, sut.Enabled(context.Background(), tc.expectedLevel-1))
		})
	}
}

func Test_NewLoggerServiceAttribute(t *testing.T) {
	// given
	buf := &bytes.Buffer{}
	sut, err := newLogger(buf, "drip-worker", "INFO", "json")
	require.NoError(t, err)

	// when
	sut.Info("drip sent", slog.Int64("id", 1))

	// then
	record := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "drip-worker", record["service"])
	assert.Equal(t, "drip sent", record["msg"])
}
