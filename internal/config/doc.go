// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

// Package config loads Receitas configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (CONFIG_PATH, or config.yaml / /etc/receitas/config.yaml)
//  3. Environment variables (see envTransformFunc for the full mapping)
//
// The merged result is validated before it is returned:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//
// Environment variables:
//
//	DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
//	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT
//	TRANSLATE_URL, TRANSLATE_TIMEOUT, TRANSLATE_USER_AGENT,
//	TRANSLATE_SOURCE_LANG, TRANSLATE_TARGET_LANG, TRANSLATE_CIRCUIT_BREAKER
//	CATALOG_URL, CATALOG_TIMEOUT, CATALOG_MAX_RETRIES, CATALOG_CIRCUIT_BREAKER
//	SEARCH_PAGE_SIZE, FAVORITES_PAGE_SIZE, RANKING_LIMIT
//	AUTH_MODE, JWT_SECRET, CORS_ORIGINS,
//	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
package config
