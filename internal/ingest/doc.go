// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package ingest merges catalog recipes into the local store.

The Orchestrator is the only place that decides when a catalog record becomes
a persisted recipe. It serves two operations:

# Detail

Detail resolves one external identifier to a populated recipe:

  - catalog identifiers (themealdb_<id>, legacy tmdb_<id>) are normalized to
    the current prefix, then get-or-created in the store
  - a row that was just created, or one missing instructions or ingredients,
    is filled from the catalog and marked approved
  - when the catalog has nothing, ErrRecipeNotFound is returned and the empty
    row stays behind; it is never listed and is repaired on the next view
  - any other identifier is looked up locally only

Concurrent first views of the same identifier share one catalog fetch.

# Search

Search concatenates catalog summaries (by name, by each ingredient, by
category, by area, in that order) with a local pass over listed recipes, then
slices out one page. Results are not deduplicated: a catalog recipe that has
already been viewed can appear once from each source.

Catalog and translation failures never fail a search. A failing local pass is
logged and contributes no rows.
*/
package ingest
