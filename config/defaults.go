package config

import (
	"time"
)

func getDefaultDripConfig() *DripConfig {
	return &DripConfig{
		LogLevel:     "INFO",
		LogFormat:    "text",
		ProfilerAddr: "",
		Prometheus:   getDefaultPrometheusConfig(),
		Tracing:      getDefaultTracingConfig(),
		Chain:        getDefaultChainConfig(),
		Db:           getDefaultDbConfig(),
		Cache:        getDefaultCacheConfig(),
		MessageQueue: getDefaultMessageQueueConfig(),
		Drip:         getDefaultDripSettings(),
		Reconciler:   getDefaultReconcilerConfig(),
	}
}

func getDefaultPrometheusConfig() *PrometheusConfig {
	return &PrometheusConfig{
		Enabled:  false,
		Endpoint: "/metrics",
		Addr:     ":2112",
	}
}

func getDefaultTracingConfig() *TracingConfig {
	return &TracingConfig{
		Enabled:  false,
		DialAddr: "http://localhost:4317",
	}
}

func getDefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		RPCURL:         "http://localhost:8545",
		ChainID:        11155111,
		SignerKey:      "",
		RequestTimeout: 15 * time.Second,
	}
}

func getDefaultDbConfig() *DbConfig {
	return &DbConfig{
		Postgres: &PostgresConfig{
			Host:         "localhost",
			Port:         5432,
			Name:         "drip",
			User:         "drip",
			Password:     "drip",
			MaxIdleConns: 10,
			MaxOpenConns: 80,
			SslMode:      "disable",
		},
	}
}

func getDefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Engine: CacheEngineRedis,
		Redis: &RedisConfig{
			Addr:     "localhost:6379",
			Password: "",
			DB:       0,
		},
	}
}

func getDefaultMessageQueueConfig() *MessageQueueConfig {
	return &MessageQueueConfig{
		URL:                "nats://localhost:4222",
		Topic:              "drip-requests",
		FileStorage:        false,
		MaxDeliver:         5,
		AckWait:            5 * time.Minute,
		StreamMaxAge:       24 * time.Hour,
		RedeliveryBackoff:  []time.Duration{5 * time.Second, 30 * time.Second, 2 * time.Minute},
		ConnectionAttempts: 5,
	}
}

func getDefaultDripSettings() *DripSettings {
	return &DripSettings{
		Amount:                   "10000000000000000", // 0.01 ether
		Concurrency:              2,
		ConfirmationTimeout:      120 * time.Second,
		ConfirmationPollInterval: 2 * time.Second,
		FeeSafetyMargin:          1.25,
		FallbackGasLimit:         21000,
		PriorityFeeFloor:         "1500000000",  // 1.5 gwei
		MaxFeeFloor:              "30000000000", // 30 gwei
		SignerLock: &SignerLockConfig{
			TTL:         180 * time.Second,
			MaxAttempts: 4,
			BaseDelay:   250 * time.Millisecond,
		},
		Retry: &RetryConfig{
			MaxRetries: 5,
			BaseDelay:  500 * time.Millisecond,
		},
	}
}

func getDefaultReconcilerConfig() *ReconcilerConfig {
	return &ReconcilerConfig{
		Enabled:       true,
		Interval:      60 * time.Second,
		BatchSize:     50,
		MaxIterations: 10,
		LockTTL:       120 * time.Second,
	}
}
