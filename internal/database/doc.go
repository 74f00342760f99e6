// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

// Package database is the DuckDB store for recipes and their community data.
//
// # Tables
//
//   - recipes: one row per external identifier. Category, area and
//     ingredients are JSON arrays in TEXT columns (models.StringList).
//   - ratings: one row per (user, recipe); the recipe's average_rating is
//     recomputed in the same transaction as every upsert.
//   - comments: append-only.
//   - favorites: (user, recipe) membership.
//   - schema_migrations: versioned migrations applied after table creation.
//
// There are no foreign keys. Rejecting a recipe removes its ratings,
// comments and favorites in the same transaction as the recipe row.
//
// # Concurrency
//
// DuckDB uses optimistic concurrency control. Writes that can race
// (recipe creation, content updates, rating upserts, favorite toggles) retry
// on "Transaction conflict" errors with a short exponential backoff. Recipe
// creation relies on the UNIQUE constraint on external_id:
//
//	INSERT INTO recipes (...) VALUES (...) ON CONFLICT (external_id) DO NOTHING
//
// followed by a read, so concurrent first requests for the same identifier
// end up with exactly one row.
//
// # Errors
//
// Lookups that find nothing return ErrNotFound. Writes that fail validation
// return an error wrapping ErrInvalidRecipe or ErrInvalidScore.
//
// # Metrics
//
// Every public operation records duckdb_query_duration_seconds and, on
// failure, duckdb_query_errors_total through metrics.RecordDBQuery.
package database
