// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package models defines the data structures shared by the catalog client, the
ingestion orchestrator, the DuckDB store and the HTTP API.

Key types:

  - Recipe: the persisted record, one row per external identifier
  - CandidateRecipe: a freshly fetched, translated catalog record that has not
    been merged into a Recipe yet
  - RecipeSummary: the compact form used by search results, rankings and
    favorites listings
  - Rating, Comment, Favorite: per-user community data keyed by recipe
  - StringList: JSON-encoded list column used for category, area and
    ingredients at the storage boundary
*/
package models
