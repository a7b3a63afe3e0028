package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	StorageBackend  string        `env:"STORAGE_BACKEND" envDefault:"memory"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	MigrationsDir   string        `env:"MIGRATIONS_DIR" envDefault:"migrations"`
	SeedFile        string        `env:"SEED_FILE"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"static"`
	EventWorkers    int           `env:"EVENT_WORKERS" envDefault:"4"`
	KafkaBrokers    []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic      string        `env:"KAFKA_TOPIC" envDefault:"activity-events"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres storage backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q, must be one of: memory, postgres", c.StorageBackend)
	}
	if c.EventWorkers <= 0 {
		return errors.New("EVENT_WORKERS must be positive")
	}
	return nil
}
