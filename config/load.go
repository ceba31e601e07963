package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrConfigFailedToSetDefaults = errors.New("error occurred while setting defaults")
	ErrConfigPath                = errors.New("config path error")
	ErrConfigFailedToDump        = errors.New("failed to dump config")
)

func Load(configFileDirs ...string) (*DripConfig, error) {
	dripConfig := getDefaultDripConfig()

	err := setDefaults(dripConfig)
	if err != nil {
		return nil, err
	}

	err = overrideWithFiles(configFileDirs...)
	if err != nil {
		return nil, err
	}

	viper.SetEnvPrefix("DRIP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.Unmarshal(dripConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if dripConfig.Tracing != nil {
		tracingAttributes := make([]attribute.KeyValue, 0, len(dripConfig.Tracing.Attributes))
		for key, value := range dripConfig.Tracing.Attributes {
			tracingAttributes = append(tracingAttributes, attribute.String(key, value))
		}

		if len(tracingAttributes) > 0 {
			dripConfig.Tracing.KeyValueAttributes = tracingAttributes
		}
	}

	return dripConfig, nil
}

// DumpConfig writes the effective configuration, defaults included, to the given file.
func DumpConfig(configFile string) error {
	err := viper.SafeWriteConfigAs(configFile)
	if err != nil {
		return errors.Join(ErrConfigFailedToDump, err)
	}

	return nil
}

func setDefaults(defaultConfig *DripConfig) error {
	defaultsMap := make(map[string]interface{})

	if err := mapstructure.Decode(defaultConfig, &defaultsMap); err != nil {
		err = errors.Join(ErrConfigFailedToSetDefaults, err)
		return err
	}

	for key, value := range defaultsMap {
		viper.SetDefault(key, value)
	}

	return nil
}

func overrideWithFiles(configFileDirs ...string) error {
	if len(configFileDirs) == 0 || configFileDirs[0] == "" {
		return nil
	}

	for _, path := range configFileDirs {
		stat, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return errors.Join(ErrConfigPath, fmt.Errorf("path: %s does not exist", path))
			}
			return err
		}
		if !stat.IsDir() {
			return errors.Join(ErrConfigPath, fmt.Errorf("path: %s should be a directory", path))
		}

		viper.AddConfigPath(path)
	}

	err := viper.ReadInConfig()
	if err != nil {
		return err
	}

	return nil
}
