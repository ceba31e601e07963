package helper

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evm-faucet/drip/config"
	dripLogger "github.com/evm-faucet/drip/internal/logger"
)

// LoadConfig loads the drip config from the directory given by the persistent config flag.
func LoadConfig(cmd *cobra.Command) (*config.DripConfig, error) {
	configDir, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	dripConfig, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return dripConfig, nil
}

func NewLogger(dripConfig *config.DripConfig) *slog.Logger {
	logger, err := dripLogger.NewLogger("drip-cli", dripConfig.LogLevel, "tint")
	if err != nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return logger
}
