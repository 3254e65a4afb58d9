// Package config loads server and worker settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmynk/settleup/pkg/logging"
)

const minSecretLength = 32

type Config struct {
	// HTTP server
	Port       string `env:"PORT" envDefault:"8080"`
	StaticPath string `env:"STATIC_PATH" envDefault:"./web/static"`

	// Database
	DBPath string `env:"DB_PATH" envDefault:"./data/settleup.db"`

	// Auth; JWTSecret has no default and must be set for the server.
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AMQP activity feed; publishing is disabled when AMQPURL is empty.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"settleup"`
	AMQPQueue    string `env:"AMQP_QUEUE" envDefault:"settleup.activity"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// Load reads an optional .env file, then parses the environment. Variables
// already set in the environment win over the file.
func Load() (*Config, error) {
	// .env is for local development; its absence is not an error.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Level converts LogLevel to a slog level.
func (c *Config) Level() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}

// PublishingEnabled reports whether activities are sent to AMQP.
func (c *Config) PublishingEnabled() bool {
	return c.AMQPURL != ""
}

// Validate returns every problem with the server configuration joined in one error.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}

	if c.JWTSecret == "" {
		errs = append(errs, "JWT secret is required (set JWT_SECRET)")
	} else if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Sprintf("JWT secret must be at least %d characters", minSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, "token TTL must be positive")
	}

	errs = append(errs, c.amqpProblems()...)

	return joinProblems(errs)
}

// ValidateAMQP checks only the AMQP settings. The activity worker needs
// nothing else.
func (c *Config) ValidateAMQP() error {
	return joinProblems(c.amqpProblems())
}

func (c *Config) amqpProblems() []string {
	var errs []string
	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}
	return errs
}

func joinProblems(errs []string) error {
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
