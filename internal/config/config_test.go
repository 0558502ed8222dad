// Attendly - Event Discovery, Review, and Recommendation Platform
// Copyright 2026 The Attendly Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attendly/attendly

package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "server.timeout",
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: "server.environment",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name: "production requires jwt secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "short"
			},
			wantErr: "jwt_secret",
		},
		{
			name: "production with long secret passes",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = strings.Repeat("s", 32)
			},
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Security.BcryptCost = 4 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "invalid recommend weights surface",
			mutate:  func(c *Config) { c.Recommend.Weights.Category = 0.9 },
			wantErr: "recommend",
		},
		{
			name:    "scheduler interval too short",
			mutate:  func(c *Config) { c.Scheduler.Interval = time.Second },
			wantErr: "scheduler.interval",
		},
		{
			name: "disabled scheduler skips interval check",
			mutate: func(c *Config) {
				c.Scheduler.Enabled = false
				c.Scheduler.Interval = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"ATTENDLY_SERVER__PORT", "server.port"},
		{"ATTENDLY_DATABASE__MAX_MEMORY", "database.max_memory"},
		{"ATTENDLY_SECURITY__JWT_SECRET", "security.jwt_secret"},
		{"ATTENDLY_RECOMMEND__WEIGHTS__CATEGORY", "recommend.weights.category"},
		{"ATTENDLY_LOGGING__LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("ATTENDLY_SERVER__PORT", "9090")
	t.Setenv("ATTENDLY_LOGGING__LEVEL", "debug")
	t.Setenv(ConfigPathEnvVar, "/nonexistent/attendly.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// Untouched settings keep their defaults.
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("Database.MaxMemory = %q, want 1GB", cfg.Database.MaxMemory)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("ATTENDLY_SECURITY__CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv(ConfigPathEnvVar, "/nonexistent/attendly.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}
