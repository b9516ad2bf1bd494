package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrConfiguration wraps every startup configuration failure.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	// Persistence
	DBDriver           string        `env:"DB_DRIVER" envDefault:"mysql"`
	DatabaseDSN        string        `env:"DATABASE_DSN,required,notEmpty"`
	DBOperationTimeout time.Duration `env:"DB_OPERATION_TIMEOUT" envDefault:"5s"`
	DBLogLevel         string        `env:"DB_LOG_LEVEL" envDefault:"warn"`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// HTTP
	Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Optional AI task drafting
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBOperationTimeout <= 0 {
		return errors.New("DB_OPERATION_TIMEOUT must be positive")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
