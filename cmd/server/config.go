package main

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the API process. JWT settings may be
// absent: the service answers with a configuration error at issuance time
// instead of refusing to start.
type Config struct {
	Addr        string         `env:"ADDR" envDefault:":8080"`
	DatabaseDSN string         `env:"DATABASE_DSN" envDefault:"file:people_manager.db?cache=shared&_pragma=foreign_keys(1)"`
	JWTSecret   string         `env:"JWT_SECRET"`
	JWTExpiry   *time.Duration `env:"JWT_EXPIRY"`

	// Optional development seed account, mirrors the original in-memory
	// database seeding. Both must be set for the seed to run.
	SeedUsername string `env:"SEED_USERNAME"`
	SeedPassword string `env:"SEED_PASSWORD"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
