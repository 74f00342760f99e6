// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/receitas/config.yaml",
	"/etc/receitas/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Browser-like agent; the mobile translation page rejects obvious bots.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "/data/receitas.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			Timeout: 60 * time.Second,
		},
		Translation: TranslationConfig{
			BaseURL:        "https://translate.google.com/m",
			Timeout:        5 * time.Second,
			UserAgent:      defaultUserAgent,
			SourceLang:     "pt",
			TargetLang:     "en",
			CircuitBreaker: true,
		},
		Catalog: CatalogConfig{
			BaseURL:        "https://www.themealdb.com/api/json/v1/1/",
			Timeout:        10 * time.Second,
			MaxRetries:     2,
			RetryBaseDelay: 500 * time.Millisecond,
			CircuitBreaker: true,
			CacheSize:      500,
			CacheTTL:       10 * time.Minute,
		},
		Search: SearchConfig{
			PageSize:          9,
			FavoritesPageSize: 6,
			RankingLimit:      12,
		},
		Security: SecurityConfig{
			AuthMode:        "jwt",
			CORSOrigins:     []string{},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// sliceConfigPaths are split on commas when they arrive as plain strings from env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// LoadWithKoanf layers defaults, an optional YAML file and environment
// variables, then validates the result.
func LoadWithKoanf() (*Config, error) {
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

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
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

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",

	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",

	"translate_url":             "translation.base_url",
	"translate_timeout":         "translation.timeout",
	"translate_user_agent":      "translation.user_agent",
	"translate_source_lang":     "translation.source_lang",
	"translate_target_lang":     "translation.target_lang",
	"translate_circuit_breaker": "translation.circuit_breaker",

	"catalog_url":              "catalog.base_url",
	"catalog_timeout":          "catalog.timeout",
	"catalog_max_retries":      "catalog.max_retries",
	"catalog_retry_base_delay": "catalog.retry_base_delay",
	"catalog_circuit_breaker":  "catalog.circuit_breaker",
	"catalog_cache_size":       "catalog.cache_size",
	"catalog_cache_ttl":        "catalog.cache_ttl",

	"search_page_size":    "search.page_size",
	"favorites_page_size": "search.favorites_page_size",
	"ranking_limit":       "search.ranking_limit",

	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unknown variables so koanf skips them.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
