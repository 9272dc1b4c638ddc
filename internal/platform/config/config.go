// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, services) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/newsdesk/pkg/slug"
)

// # Configuration Schema

// Config holds all runtime configuration for the newsdesk server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// CacheTTL bounds how long cached entry lists survive without a write.
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`

	// Token keys. Only the public key is needed to verify tokens; the private
	// key is optional and enables signing for local tooling.
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Content languages, first match wins during negotiation.
	Languages       []string `env:"LANGUAGES"        envDefault:"en,de" envSeparator:","`
	DefaultLanguage string   `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	// PaginationAmount is the page size of public entry lists.
	PaginationAmount int `env:"PAGINATION_AMOUNT" envDefault:"10"`

	// Slug derivation for entry titles.
	SlugMaxLength     int  `env:"SLUG_MAX_LENGTH"    envDefault:"64"`
	SlugTransliterate bool `env:"SLUG_TRANSLITERATE" envDefault:"true"`

	// Site identity used by feeds and absolute links.
	SiteName      string `env:"SITE_NAME"       envDefault:"Newsdesk"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks cross-field constraints that struct tags cannot express.
func (c *Config) validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("config: LANGUAGES must list at least one language")
	}
	if !slices.Contains(c.Languages, c.DefaultLanguage) {
		return fmt.Errorf("config: DEFAULT_LANGUAGE %q is not in LANGUAGES", c.DefaultLanguage)
	}
	if c.SlugMaxLength < 1 || c.SlugMaxLength > slug.DefaultMaxLength {
		return fmt.Errorf("config: SLUG_MAX_LENGTH must be between 1 and %d", slug.DefaultMaxLength)
	}
	if c.PaginationAmount < 1 {
		return fmt.Errorf("config: PAGINATION_AMOUNT must be positive")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the extra CORS origins allowed outside development.
func (c *Config) Origins() []string {
	return c.AllowedOrigins
}
