package config

import (
	"fmt"

	"courier/internal/constants"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errors []error

	if err := validateServer(cfg.Server); err != nil {
		errors = append(errors, err)
	}

	if err := validateBroker(cfg.Broker); err != nil {
		errors = append(errors, err)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.ReadTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.read_timeout_seconds",
			Message: "read timeout must be positive",
		}
	}

	if cfg.WriteTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.write_timeout_seconds",
			Message: "write timeout must be positive",
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RPS <= 0 {
			return &ValidationError{
				Field:   "server.rate_limit.rps",
				Message: "rps must be positive when rate limiting is enabled",
			}
		}
		if cfg.RateLimit.Burst < 1 {
			return &ValidationError{
				Field:   "server.rate_limit.burst",
				Message: "burst must be at least 1 when rate limiting is enabled",
			}
		}
	}

	return nil
}

func validateBroker(cfg BrokerConfig) error {
	switch cfg.Mode {
	case constants.BrokerModeStrict, constants.BrokerModeLenient:
	default:
		return &ValidationError{
			Field:   "broker.mode",
			Message: fmt.Sprintf("unknown broker mode: %s (supported: strict, lenient)", cfg.Mode),
		}
	}

	if cfg.StatsIntervalSeconds < 1 {
		return &ValidationError{
			Field:   "broker.stats_interval_seconds",
			Message: "stats interval must be at least 1 second",
		}
	}

	return nil
}
