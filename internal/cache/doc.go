// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package cache provides a thread-safe LRU cache with per-entry TTL.

The catalog client uses it to keep translated search pages for a short
while, so repeated queries for the same term skip both the TheMealDB call
and the translation round trips.

Operations are O(1): a hashmap indexes the nodes of a doubly-linked list
ordered by recency. Expired entries are dropped lazily on access or in bulk
through CleanupExpired.

Example:

	c := cache.NewLRU[[]models.RecipeSummary](500, 10*time.Minute)
	c.Add("name\x00frango", summaries)
	if hit, ok := c.Get("name\x00frango"); ok {
	    return hit
	}
*/
package cache
