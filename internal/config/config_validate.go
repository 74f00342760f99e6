// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// minJWTSecretLength matches the HS256 key size.
const minJWTSecretLength = 32

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got: %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateTranslation() error {
	if err := validateHTTPURL(c.Translation.BaseURL, "TRANSLATE_URL"); err != nil {
		return err
	}
	if c.Translation.Timeout <= 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be positive, got: %s", c.Translation.Timeout)
	}
	if _, err := language.Parse(c.Translation.SourceLang); err != nil {
		return fmt.Errorf("TRANSLATE_SOURCE_LANG %q is not a valid language tag: %w", c.Translation.SourceLang, err)
	}
	if _, err := language.Parse(c.Translation.TargetLang); err != nil {
		return fmt.Errorf("TRANSLATE_TARGET_LANG %q is not a valid language tag: %w", c.Translation.TargetLang, err)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.BaseURL, "CATALOG_URL"); err != nil {
		return err
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("CATALOG_TIMEOUT must be positive, got: %s", c.Catalog.Timeout)
	}
	if c.Catalog.MaxRetries < 0 || c.Catalog.MaxRetries > 10 {
		return fmt.Errorf("CATALOG_MAX_RETRIES must be between 0 and 10, got: %d", c.Catalog.MaxRetries)
	}
	if c.Catalog.CacheSize < 0 {
		return fmt.Errorf("CATALOG_CACHE_SIZE must not be negative, got: %d", c.Catalog.CacheSize)
	}
	if c.Catalog.CacheSize > 0 && c.Catalog.CacheTTL <= 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must be positive when caching is enabled, got: %s", c.Catalog.CacheTTL)
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.PageSize < 1 || c.Search.PageSize > 100 {
		return fmt.Errorf("SEARCH_PAGE_SIZE must be between 1 and 100, got: %d", c.Search.PageSize)
	}
	if c.Search.FavoritesPageSize < 1 || c.Search.FavoritesPageSize > 100 {
		return fmt.Errorf("FAVORITES_PAGE_SIZE must be between 1 and 100, got: %d", c.Search.FavoritesPageSize)
	}
	if c.Search.RankingLimit < 1 || c.Search.RankingLimit > 100 {
		return fmt.Errorf("RANKING_LIMIT must be between 1 and 100, got: %d", c.Search.RankingLimit)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT_SECRET must be at least %d characters when AUTH_MODE=jwt", minJWTSecretLength)
		}
	case "none":
	default:
		return fmt.Errorf("AUTH_MODE must be one of: jwt, none (got: %s)", c.Security.AuthMode)
	}

	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must list explicit origins, wildcard is not allowed")
		}
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got: %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled (got: %s)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console (got: %s)", c.Logging.Format)
	}
	return nil
}
