// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

// Package logging provides zerolog-based structured logging for Receitas.
//
// A single global logger is configured once at startup from the logging
// section of the configuration and shared by every package. Request-scoped
// logging picks up the request and correlation IDs stored in the context by
// the HTTP middleware:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Warn().Str("query_type", "ingredient").Msg("Catalog returned no meals")
//
// Long-lived clients take a component logger when they are constructed,
// after Init has run:
//
//	c.log = logging.WithComponent("catalog")
//
// The slog adapter lets libraries that only speak log/slog (sutureslog for the
// supervisor tree) write through the same zerolog output.
package logging
