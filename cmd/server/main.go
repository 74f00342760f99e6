// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

// Package main is the entry point for the Receitas server.
//
// Receitas serves a Portuguese-language recipe catalog. Recipes come from
// TheMealDB, are translated on first view and stored in DuckDB together with
// the ratings, comments and favorites of users. Users can also submit their
// own recipes, which wait for a moderator.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Database: DuckDB with schema migrations
//  4. Translation client, wrapped in a circuit breaker when enabled
//  5. TheMealDB client, wrapped in a circuit breaker when enabled
//  6. Ingestion orchestrator
//  7. Authentication: JWT verification, or none for development
//  8. HTTP server and checkpoint service under a suture supervisor tree
//
// # Configuration
//
// Sources, highest priority first:
//   - Environment variables (DUCKDB_PATH, AUTH_MODE, JWT_SECRET, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
// in-flight requests, the database is checkpointed and then closed.
//
// # Example Usage
//
// Development, no authentication:
//
//	export AUTH_MODE=none
//	./receitas
//
// Production:
//
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export DUCKDB_PATH=/data/receitas.duckdb
//	export CORS_ORIGINS=https://receitas.example
//	./receitas
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/receitas/internal/api"
	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/catalog"
	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/ingest"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/supervisor"
	"github.com/tomtom215/receitas/internal/supervisor/services"
	"github.com/tomtom215/receitas/internal/translate"
)

const checkpointInterval = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("catalog_url", cfg.Catalog.BaseURL).
		Str("source_lang", cfg.Translation.SourceLang).
		Str("target_lang", cfg.Translation.TargetLang).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	authMode, err := auth.ParseAuthMode(cfg.Security.AuthMode)
	if err != nil {
		return err
	}
	var jwtManager *auth.JWTManager
	if authMode == auth.AuthModeJWT {
		if jwtManager, err = auth.NewJWTManager(&cfg.Security); err != nil {
			return fmt.Errorf("failed to initialize JWT verification: %w", err)
		}
	} else {
		logging.Warn().Msg("Authentication disabled (AUTH_MODE=none): every request acts as an administrator")
	}

	translator, translatorBreaker := buildTranslator(cfg)
	catalogAPI, catalogBreaker := buildCatalogAPI(cfg)
	catalogClient := catalog.NewClient(catalogAPI, translator, &cfg.Translation).
		WithSummaryCache(cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL)

	orchestrator := ingest.New(db, catalogClient, translator, ingest.NewConfig(cfg))

	handler := api.NewHandler(db, orchestrator, cfg)
	if translatorBreaker != nil {
		handler.RegisterBreaker("translation", translatorBreaker)
	}
	if catalogBreaker != nil {
		handler.RegisterBreaker("catalog", catalogBreaker)
	}

	router := api.NewRouter(handler, auth.NewMiddleware(jwtManager, authMode), api.NewChiMiddlewareFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}
	tree.AddDataService(services.NewCheckpointService(db, checkpointInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// buildTranslator returns the translation client and, when enabled, the
// breaker wrapping it.
func buildTranslator(cfg *config.Config) (translate.Translator, *translate.CircuitBreakerTranslator) {
	client := translate.NewClient(&cfg.Translation)
	if !cfg.Translation.CircuitBreaker {
		return client, nil
	}
	cb := translate.NewCircuitBreakerTranslator(client)
	return cb, cb
}

// buildCatalogAPI returns the TheMealDB client and, when enabled, the
// breaker wrapping it.
func buildCatalogAPI(cfg *config.Config) (catalog.API, *catalog.CircuitBreakerClient) {
	client := catalog.NewAPIClient(&cfg.Catalog)
	if !cfg.Catalog.CircuitBreaker {
		return client, nil
	}
	cb := catalog.NewCircuitBreakerClient(client)
	return cb, cb
}
