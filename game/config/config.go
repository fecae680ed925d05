package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load
const (
	EnvLogLevel    = "CHECKERS_LOG_LEVEL"
	EnvLogFormat   = "CHECKERS_LOG_FORMAT"
	EnvHistoryFile = "CHECKERS_HISTORY_FILE"
	EnvSessionTTL  = "CHECKERS_SESSION_TTL"
)

// Defaults applied before the environment is read
const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "terminal"
	DefaultHistoryFile = ".checkers_history"
	DefaultSessionTTL  = 24 * time.Hour
)

var validate = validator.New()

// Config holds process-wide settings for the checkers tools
type Config struct {
	LogLevel    string        `validate:"required,oneof=debug info warn error crit"`
	LogFormat   string        `validate:"required,oneof=terminal logfmt json"`
	HistoryFile string        `validate:"omitempty,max=4096"`
	SessionTTL  time.Duration `validate:"gte=0"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		HistoryFile: DefaultHistoryFile,
		SessionTTL:  DefaultSessionTTL,
	}
}

// Load reads optional .env files, then overlays environment variables on the
// defaults and validates the result. Missing .env files are not an error.
// With no files given, ".env" in the working directory is tried.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := Default()
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv(EnvHistoryFile); ok {
		cfg.HistoryFile = v
	}
	if v := os.Getenv(EnvSessionTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvSessionTTL, err)
		}
		cfg.SessionTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var details []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details = append(details, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			details = append(details, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		default:
			details = append(details, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(details, "; "))
}
