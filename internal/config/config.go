package config

import (
	"time"
)

type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Broker  BrokerConfig
	Tracing TracingConfig
}

type ServerConfig struct {
	Port                int             `mapstructure:"port"`
	ReadTimeoutSeconds  time.Duration   `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds time.Duration   `mapstructure:"write_timeout_seconds"`
	RateLimit           RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	RPS             float64 `mapstructure:"rps"`
	Burst           int     `mapstructure:"burst"`
	CleanupInterval int     `mapstructure:"cleanup_interval"`
	MaxAge          int     `mapstructure:"max_age"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BrokerConfig controls the queue engine policy. In "strict" mode channels
// must be registered before use and a missing channel is an error on every
// operation. In "lenient" mode publish auto-creates the channel, and read or
// stats against a missing channel return an empty result.
type BrokerConfig struct {
	Mode                 string `mapstructure:"mode"`
	StatsIntervalSeconds int    `mapstructure:"stats_interval_seconds"`
}

type TracingConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	ServiceName string        `mapstructure:"service_name"`
	OTLP        OTLPConfig    `mapstructure:"otlp"`
	Sampler     SamplerConfig `mapstructure:"sampler"`
}

type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type SamplerConfig struct {
	Type  string  `mapstructure:"type"`
	Param float64 `mapstructure:"param"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
