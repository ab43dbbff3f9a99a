package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the process-wide configuration loaded once at startup.
type Config struct {
	Environment string `env:"APP_ENV"      envDefault:"development"`
	Port        string `env:"PORT"         envDefault:"5000"`
	MongoURI    string `env:"MONGO_URI"`
	MongoDB     string `env:"MONGO_DB"     envDefault:"mernventory"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	Token TokenConfig
}

// TokenConfig holds the session and password reset token settings.
type TokenConfig struct {
	Secret                      string        `env:"JWT_SECRET"`
	Issuer                      string        `env:"JWT_ISSUER"                      envDefault:"mernventory"`
	SessionTokenExpiresIn       time.Duration `env:"SESSION_TOKEN_EXPIRES_IN"        envDefault:"24h"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"30m"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// IsProduction reports whether the process runs with a production-like
// configuration.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}

	return nil
}
