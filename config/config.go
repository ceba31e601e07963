package config

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
)

const (
	CacheEngineRedis    = "redis"
	CacheEngineInMemory = "in-memory"
)

type DripConfig struct {
	LogLevel     string              `mapstructure:"logLevel"`
	LogFormat    string              `mapstructure:"logFormat"`
	ProfilerAddr string              `mapstructure:"profilerAddr"`
	Prometheus   *PrometheusConfig   `mapstructure:"prometheus"`
	Tracing      *TracingConfig      `mapstructure:"tracing"`
	Chain        *ChainConfig        `mapstructure:"chain"`
	Db           *DbConfig           `mapstructure:"db"`
	Cache        *CacheConfig        `mapstructure:"cache"`
	MessageQueue *MessageQueueConfig `mapstructure:"messageQueue"`
	Drip         *DripSettings       `mapstructure:"drip"`
	Reconciler   *ReconcilerConfig   `mapstructure:"reconciler"`
}

type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Addr     string `mapstructure:"addr"`
}

func (p *PrometheusConfig) IsEnabled() bool {
	return p != nil && p.Enabled && p.Addr != "" && p.Endpoint != ""
}

type TracingConfig struct {
	Enabled            bool                 `mapstructure:"enabled"`
	DialAddr           string               `mapstructure:"dialAddr"`
	Attributes         map[string]string    `mapstructure:"attributes"`
	KeyValueAttributes []attribute.KeyValue `mapstructure:"-"`
}

func (t *TracingConfig) IsEnabled() bool {
	return t != nil && t.Enabled && t.DialAddr != ""
}

type ChainConfig struct {
	RPCURL         string        `mapstructure:"rpcUrl"`
	ChainID        int64         `mapstructure:"chainId"`
	SignerKey      string        `mapstructure:"signerKey"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
}

type DbConfig struct {
	Postgres *PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
	SslMode      string `mapstructure:"sslMode"`
}

type CacheConfig struct {
	Engine string       `mapstructure:"engine"`
	Redis  *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MessageQueueConfig struct {
	URL                string          `mapstructure:"url"`
	Topic              string          `mapstructure:"topic"`
	FileStorage        bool            `mapstructure:"fileStorage"`
	MaxDeliver         int             `mapstructure:"maxDeliver"`
	AckWait            time.Duration   `mapstructure:"ackWait"`
	StreamMaxAge       time.Duration   `mapstructure:"streamMaxAge"`
	RedeliveryBackoff  []time.Duration `mapstructure:"redeliveryBackoff"`
	ConnectionAttempts int             `mapstructure:"connectionAttempts"`
}

// DripSettings holds the tunables of the transaction submission pipeline.
// Amounts and fee floors are decimal wei strings.
type DripSettings struct {
	Amount                   string            `mapstructure:"amount"`
	Concurrency              int               `mapstructure:"concurrency"`
	ConfirmationTimeout      time.Duration     `mapstructure:"confirmationTimeout"`
	ConfirmationPollInterval time.Duration     `mapstructure:"confirmationPollInterval"`
	FeeSafetyMargin          float64           `mapstructure:"feeSafetyMargin"`
	FallbackGasLimit         uint64            `mapstructure:"fallbackGasLimit"`
	PriorityFeeFloor         string            `mapstructure:"priorityFeeFloor"`
	MaxFeeFloor              string            `mapstructure:"maxFeeFloor"`
	SignerLock               *SignerLockConfig `mapstructure:"signerLock"`
	Retry                    *RetryConfig      `mapstructure:"retry"`
}

type SignerLockConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxAttempts int           `mapstructure:"maxAttempts"`
	BaseDelay   time.Duration `mapstructure:"baseDelay"`
}

type RetryConfig struct {
	MaxRetries int           `mapstructure:"maxRetries"`
	BaseDelay  time.Duration `mapstructure:"baseDelay"`
}

type ReconcilerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	Interval      time.Duration `mapstructure:"interval"`
	BatchSize     int           `mapstructure:"batchSize"`
	MaxIterations int           `mapstructure:"maxIterations"`
	LockTTL       time.Duration `mapstructure:"lockTtl"`
}
