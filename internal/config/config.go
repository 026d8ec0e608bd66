// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

// Package config loads and validates Learnmate configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (CONFIG_PATH or config.yaml), then environment variables. A .env file in
// the working directory is read first so local secrets can live outside the
// shell environment.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Models   ModelsConfig   `koanf:"models"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
	Seed      bool   `koanf:"seed"`    // insert the demo users and content catalog on startup
}

// SecurityConfig holds session, password hashing and request limiting settings.
type SecurityConfig struct {
	// SessionStore is one of "memory", "badger" or "cookie".
	SessionStore     string        `koanf:"session_store"`
	SessionStorePath string        `koanf:"session_store_path"`
	SessionTimeout   time.Duration `koanf:"session_timeout"`
	// SessionSecret signs cookie sessions. Required when SessionStore is "cookie".
	SessionSecret string `koanf:"session_secret"`
	CookieName    string `koanf:"cookie_name"`
	CookieSecure  bool   `koanf:"cookie_secure"`
	BcryptCost    int    `koanf:"bcrypt_cost"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	// AuthRateLimitReqs limits login and registration posts per window and IP.
	AuthRateLimitReqs int      `koanf:"auth_rate_limit_reqs"`
	CORSOrigins       []string `koanf:"cors_origins"`
}

// ModelsConfig holds the embedding and text-generation model settings.
type ModelsConfig struct {
	// Provider is "huggingface" for the hosted inference API or "offline" for the
	// deterministic hashing embedder with generation disabled.
	Provider        string        `koanf:"provider"`
	BaseURL         string        `koanf:"base_url"`
	APIToken        string        `koanf:"api_token"`
	EmbeddingModel  string        `koanf:"embedding_model"`
	GenerationModel string        `koanf:"generation_model"`
	MaxLength       int           `koanf:"max_length"`
	Timeout         time.Duration `koanf:"timeout"`
	EmbeddingDim    int           `koanf:"embedding_dim"` // offline provider only

	// Outbound throttling toward the inference API.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// Circuit breaker: trips after BreakerFailures consecutive failures and
	// stays open for BreakerTimeout.
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
// See LoadWithKoanf for the precedence rules.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
