package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Policies for entries that target a locked account.
const (
	LockedPolicyAbort = "abort"
	LockedPolicySkip  = "skip"
)

var ErrInvalidLockedPolicy = errors.New("invalid locked account policy")

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Replay
	LockedPolicy string `env:"LOCKED_ACCOUNT_POLICY" envDefault:"abort"`

	// Metrics (optional - leave empty to disable the textfile export)
	MetricsFile string `env:"METRICS_FILE" envDefault:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads a dotenv file into the environment, without overriding
// variables that are already set, and then calls Load.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	return Load()
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.LockedPolicy {
	case LockedPolicyAbort, LockedPolicySkip:
		return nil
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidLockedPolicy, c.LockedPolicy, LockedPolicyAbort, LockedPolicySkip)
	}
}
