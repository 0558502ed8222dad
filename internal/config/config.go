// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

// Package config loads application configuration from layered sources
// with clear precedence: environment variables override the config file,
// which overrides built-in defaults.
package config

import (
	"fmt"
	"time"

	"github.com/attendly/attendly/internal/recommend"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	Security  SecurityConfig   `koanf:"security"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
	Scheduler SchedulerConfig  `koanf:"scheduler"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the listen address. Default: "0.0.0.0".
	Host string `koanf:"host"`

	// Port is the listen port. Default: 8380.
	Port int `koanf:"port"`

	// Timeout bounds request read/write. Default: 30s.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production". Production enforces
	// a configured JWT secret.
	Environment string `koanf:"environment"`
}

// DatabaseConfig configures the embedded DuckDB database.
type DatabaseConfig struct {
	// Path is the database file path. Default: "/data/attendly.duckdb".
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage. Default: "1GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 uses runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedMockData loads demo users, events, and reviews on startup.
	SeedMockData bool `koanf:"seed_mock_data"`
}

// SecurityConfig configures authentication and request limits.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Required in production.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the token lifetime. Default: 24h.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// BcryptCost is the password hashing cost. Default: 12.
	BcryptCost int `koanf:"bcrypt_cost"`

	// RateLimitReqs is the request budget per window per IP. Default: 100.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window. Default: 1m.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// RateLimitDisabled turns rate limiting off.
	RateLimitDisabled bool `koanf:"rate_limit_disabled"`

	// CORSOrigins lists allowed CORS origins. Default: ["*"].
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error. Default: "info".
	Level string `koanf:"level"`

	// Format is "json" or "console". Default: "json".
	Format string `koanf:"format"`

	// Caller adds file:line to log entries.
	Caller bool `koanf:"caller"`
}

// SchedulerConfig configures background recommendation refresh.
type SchedulerConfig struct {
	// Enabled turns the background refresh loop on. Default: true.
	Enabled bool `koanf:"enabled"`

	// Interval is how often recommendations are regenerated. Default: 6h.
	Interval time.Duration `koanf:"interval"`

	// RetentionDays prunes recommendations older than this. Default: 30.
	RetentionDays int `koanf:"retention_days"`
}

// defaultConfig returns a Config with all sensible default values.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8380,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:         "/data/attendly.duckdb",
			MaxMemory:    "1GB",
			Threads:      0,
			SeedMockData: false,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			SessionTimeout:    24 * time.Hour,
			BcryptCost:        12,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: *recommend.DefaultConfig(),
		Scheduler: SchedulerConfig{
			Enabled:       true,
			Interval:      6 * time.Hour,
			RetentionDays: 30,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Server.Environment == "production" {
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters in production")
		}
	}
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be in [10, 31], got %d", c.Security.BcryptCost)
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive, got %s", c.Security.SessionTimeout)
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	if c.Scheduler.Enabled {
		if c.Scheduler.Interval < time.Minute {
			return fmt.Errorf("scheduler.interval must be at least 1m, got %s", c.Scheduler.Interval)
		}
		if c.Scheduler.RetentionDays < 1 {
			return fmt.Errorf("scheduler.retention_days must be positive, got %d", c.Scheduler.RetentionDays)
		}
	}

	return nil
}
