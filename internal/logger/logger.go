package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

var (
	ErrLoggerInvalidLogLevel  = errors.New("invalid log level")
	ErrLoggerInvalidLogFormat = errors.New("invalid log format")
)

// NewLogger creates the process logger writing to stdout. The service name is attached to every record.
func NewLogger(service, logLevel, logFormat string) (*slog.Logger, error) {
	return newLogger(os.Stdout, service, logLevel, logFormat)
}

func newLogger(w io.Writer, service, logLevel, logFormat string) (*slog.Logger, error) {
	slogLevel, err := getSlogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(logFormat) {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slogLevel})
	case "tint":
		handler = tint.NewHandler(w, &tint.Options{Level: slogLevel})
	default:
		return nil, errors.Join(ErrLoggerInvalidLogFormat, fmt.Errorf("log format: %s", logFormat))
	}

	logger := slog.New(handler)
	if service != "" {
		logger = logger.With(slog.String("service", service))
	}

	return logger, nil
}

func getSlogLevel(logLevel string) (slog.Level, error) {
	switch strings.ToUpper(logLevel) {
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	}

	return slog.LevelInfo, errors.Join(ErrLoggerInvalidLogLevel, fmt.Errorf("log level: %s", logLevel))
}
