// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package catalog queries TheMealDB and turns its flat meal records into
translated candidate recipes.

The package has two layers:

  - API is the raw HTTP surface (search.php, filter.php, lookup.php). It
    returns errors, retries throttling responses (429, 503) with exponential
    backoff and honours Retry-After. APIClient is the HTTP implementation and
    CircuitBreakerClient guards any API with a breaker.
  - Client is what the rest of the service uses. Its methods translate query
    terms into the catalog language and results back into the user's, and
    never return transport errors: failures are logged with query_type and
    query_value and answered with an empty result.

Identifiers are namespaced: a native id "52772" is exposed as
"themealdb_52772". The legacy "tmdb_" prefix is still accepted on input.

Ingredient display lines are rebuilt from the 20 numbered ingredient/measure
slots. Blank ingredients are skipped, and a present measure is joined as
"<measure> de <ingredient>" after both halves are translated.
*/
package catalog
