// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package middleware provides the chi-compatible HTTP middleware shared by every
route.

Key Components:

  - RequestID: reuses a sane upstream X-Request-ID or generates a UUID, and
    seeds the logging context with request and correlation IDs
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request count, duration and in-flight gauge labelled by
    the chi route pattern
  - SecurityHeaders: nosniff, frame denial and referrer policy for API responses

Typical stack, outermost first:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.SecurityHeaders)

Endpoints are labelled with the route pattern ("/api/v1/recipes/{externalID}")
rather than the raw path so that recipe identifiers do not explode label
cardinality.
*/
package middleware
