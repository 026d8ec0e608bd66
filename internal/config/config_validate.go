// Learnmate - Interest-Based Learning Recommendations and Chat
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/learnmate

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateModels(); err != nil {
		return err
	}

	return c.validateLogging()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return fmt.Errorf("HTTP read, write and idle timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

var validSessionStores = map[string]bool{
	"memory": true,
	"badger": true,
	"cookie": true,
}

// bcrypt accepts costs 4 through 31.
const (
	minBcryptCost = 4
	maxBcryptCost = 31
)

// minSessionSecretLength is the minimum HMAC key length for cookie sessions.
const minSessionSecretLength = 32

func (c *Config) validateSecurity() error {
	if err := c.validateSessionStore(); err != nil {
		return err
	}

	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.Security.CookieName) == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if c.Security.BcryptCost < minBcryptCost || c.Security.BcryptCost > maxBcryptCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", minBcryptCost, maxBcryptCost)
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

func (c *Config) validateSessionStore() error {
	if !validSessionStores[c.Security.SessionStore] {
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger, cookie")
	}

	switch c.Security.SessionStore {
	case "badger":
		if strings.TrimSpace(c.Security.SessionStorePath) == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	case "cookie":
		return c.validateSessionSecret()
	}
	return nil
}

func (c *Config) validateSessionSecret() error {
	secret := c.Security.SessionSecret
	if len(secret) < minSessionSecretLength {
		return fmt.Errorf("SESSION_SECRET must be at least %d characters when SESSION_STORE=cookie", minSessionSecretLength)
	}
	if c.IsProduction() && containsPlaceholder(secret) {
		return fmt.Errorf("SESSION_SECRET looks like a placeholder value; generate a random secret for production")
	}
	return nil
}

// validateCORS rejects wildcard origins in production, where session cookies
// would otherwise be usable from any site.
func (c *Config) validateCORS() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production; " +
			"set specific origins such as CORS_ORIGINS=https://learn.example.com")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.AuthRateLimitReqs < minRateLimitRequests || c.Security.AuthRateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("AUTH_RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

var validModelProviders = map[string]bool{
	"huggingface": true,
	"offline":     true,
}

// maxGenerationLength caps MaxLength; larger values only make requests slower.
const maxGenerationLength = 1024

func (c *Config) validateModels() error {
	m := c.Models
	if !validModelProviders[m.Provider] {
		return fmt.Errorf("MODEL_PROVIDER must be one of: huggingface, offline")
	}

	if m.Provider == "huggingface" {
		if err := validateHTTPURL(m.BaseURL, "HF_BASE_URL"); err != nil {
			return err
		}
		if strings.TrimSpace(m.EmbeddingModel) == "" {
			return fmt.Errorf("EMBEDDING_MODEL is required when MODEL_PROVIDER=huggingface")
		}
		if strings.TrimSpace(m.GenerationModel) == "" {
			return fmt.Errorf("GENERATION_MODEL is required when MODEL_PROVIDER=huggingface")
		}
	}

	if m.Provider == "offline" && m.EmbeddingDim < 1 {
		return fmt.Errorf("EMBEDDING_DIM must be positive when MODEL_PROVIDER=offline")
	}
	if m.MaxLength < 1 || m.MaxLength > maxGenerationLength {
		return fmt.Errorf("GENERATION_MAX_LENGTH must be between 1 and %d", maxGenerationLength)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT must be positive")
	}
	if m.RequestsPerSecond <= 0 {
		return fmt.Errorf("MODEL_REQUESTS_PER_SECOND must be positive")
	}
	if m.Burst < 1 {
		return fmt.Errorf("MODEL_BURST must be at least 1")
	}
	if m.BreakerFailures < 1 {
		return fmt.Errorf("MODEL_BREAKER_FAILURES must be at least 1")
	}
	if m.BreakerTimeout <= 0 {
		return fmt.Errorf("MODEL_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns are fragments that show a secret was never replaced.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
