// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/learnmate/config.yaml",
	"/etc/learnmate/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file path.
const DotEnvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config populated with defaults.
// These are applied first and then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second, // chat replies wait on the generation model
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:      "data/learning_data.duckdb",
			MaxMemory: "512MB",
			Threads:   0,
			Seed:      true,
		},
		Security: SecurityConfig{
			SessionStore:      "memory",
			SessionStorePath:  "data/sessions",
			SessionTimeout:    24 * time.Hour,
			SessionSecret:     "",
			CookieName:        "learnmate_session",
			CookieSecure:      false,
			BcryptCost:        12,
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			AuthRateLimitReqs: 10,
			CORSOrigins:       []string{},
		},
		Models: ModelsConfig{
			Provider:          "huggingface",
			BaseURL:           "https://api-inference.huggingface.co",
			APIToken:          "",
			EmbeddingModel:    "distilbert-base-uncased",
			GenerationModel:   "google/flan-t5-large",
			MaxLength:         100,
			Timeout:           30 * time.Second,
			EmbeddingDim:      768,
			RequestsPerSecond: 5,
			Burst:             5,
			BreakerFailures:   5,
			BreakerTimeout:    30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with layered sources:
//  1. Defaults
//  2. Optional YAML config file
//  3. Environment variables (after a .env file, if present, has been applied)
//
// The result is validated before it is returned.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv applies a .env file to the process environment.
// Variables already set in the environment win over the file.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings into slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak into config.
var envMappings = map[string]string{
	// Server
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"seed_data":         "database.seed",

	// Security
	"session_store":            "security.session_store",
	"session_store_path":       "security.session_store_path",
	"session_timeout":          "security.session_timeout",
	"session_secret":           "security.session_secret",
	"session_cookie_name":      "security.cookie_name",
	"session_cookie_secure":    "security.cookie_secure",
	"bcrypt_cost":              "security.bcrypt_cost",
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"auth_rate_limit_requests": "security.auth_rate_limit_reqs",
	"cors_origins":             "security.cors_origins",

	// Models
	"model_provider":            "models.provider",
	"hf_base_url":               "models.base_url",
	"hf_api_token":              "models.api_token",
	"embedding_model":           "models.embedding_model",
	"generation_model":          "models.generation_model",
	"generation_max_length":     "models.max_length",
	"model_timeout":             "models.timeout",
	"embedding_dim":             "models.embedding_dim",
	"model_requests_per_second": "models.requests_per_second",
	"model_burst":               "models.burst",
	"model_breaker_failures":    "models.breaker_failures",
	"model_breaker_timeout":     "models.breaker_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - HF_API_TOKEN -> models.api_token
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
