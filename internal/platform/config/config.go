package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/lueurxax/auto-news-dashboard/internal/core/errors"
)

const (
	// EnvLocal enables human-readable console logging.
	EnvLocal = "local"

	sessionSecretBytes = 32
	maxPort            = 65535
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"local"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Server ServerConfig
	Report ReportConfig
	Auth   AuthConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ensureSessionSecret(&cfg.Auth); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPort {
		return fmt.Errorf("HTTP_PORT %d out of range: %w", c.Server.Port, errors.ErrInvalidInput)
	}

	if c.Report.SourcesTopN < 1 {
		return fmt.Errorf("SOURCES_TOP_N must be positive, got %d: %w", c.Report.SourcesTopN, errors.ErrInvalidInput)
	}

	if c.Auth.Username == "" || c.Auth.Password == "" {
		return fmt.Errorf("DASHBOARD_USERNAME and DASHBOARD_PASSWORD must be set: %w", errors.ErrInvalidInput)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive: %w", errors.ErrInvalidInput)
	}

	if c.Auth.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive: %w", errors.ErrInvalidInput)
	}

	if c.Auth.LoginRatePerMin < 1 || c.Auth.LoginRateBurst < 1 {
		return fmt.Errorf("login rate limit must be positive: %w", errors.ErrInvalidInput)
	}

	return nil
}

// IsLocal reports whether the service runs in a local development environment.
func (c *Config) IsLocal() bool {
	return c.AppEnv == EnvLocal
}

// ensureSessionSecret fills an empty session secret with random bytes, so
// sessions do not survive a restart unless a secret is configured.
func ensureSessionSecret(auth *AuthConfig) error {
	if auth.SessionSecret != "" {
		return nil
	}

	buf := make([]byte, sessionSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate session secret: %w", err)
	}

	auth.SessionSecret = hex.EncodeToString(buf)
	auth.GeneratedSecret = true

	return nil
}
