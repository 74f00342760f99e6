// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Database    DatabaseConfig    `koanf:"database"`
	Server      ServerConfig      `koanf:"server"`
	Translation TranslationConfig `koanf:"translation"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Search      SearchConfig      `koanf:"search"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// TranslationConfig configures the scraped translation endpoint.
type TranslationConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	UserAgent      string        `koanf:"user_agent"`
	SourceLang     string        `koanf:"source_lang"` // language users type in
	TargetLang     string        `koanf:"target_lang"` // language the catalog understands
	CircuitBreaker bool          `koanf:"circuit_breaker"`
}

// CatalogConfig configures the TheMealDB client.
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Timeout        time.Duration `koanf:"timeout"`
	MaxRetries     int           `koanf:"max_retries"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	CircuitBreaker bool          `koanf:"circuit_breaker"`
	CacheSize      int           `koanf:"cache_size"` // search pages kept; 0 disables
	CacheTTL       time.Duration `koanf:"cache_ttl"`
}

// SearchConfig holds listing sizes.
type SearchConfig struct {
	PageSize          int `koanf:"page_size"`
	FavoritesPageSize int `koanf:"favorites_page_size"`
	RankingLimit      int `koanf:"ranking_limit"`
}

// SecurityConfig holds authentication and HTTP hardening settings.
//
// Tokens are issued by an upstream identity service; this service only
// verifies them with the shared JWTSecret.
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"` // jwt or none
	JWTSecret         string        `koanf:"jwt_secret"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
