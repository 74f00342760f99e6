// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package metrics registers the Prometheus collectors for the service.

Collectors are created with promauto against the default registry and are
exposed by the HTTP server at /metrics.

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Database:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table,error_type}
  - duckdb_transaction_retries_total{operation}

Translation:
  - translation_requests_total{result} where result is translated, fallback,
    skipped or rejected
  - translation_duration_seconds

Catalog:
  - catalog_requests_total{query_type,result}
  - catalog_request_duration_seconds{query_type}
  - catalog_retries_total{query_type}
  - catalog_cache_lookups_total{result} where result is hit or miss

Ingestion and community:
  - recipes_imported_total{outcome} where outcome is created, repaired or existing
  - recipe_import_failures_total{reason}
  - ratings_submitted_total
  - comments_posted_total
  - favorites_toggled_total{action}

Circuit breakers:
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total{name,result}
  - circuit_breaker_consecutive_failures{name}
  - circuit_breaker_state_transitions_total{name,from_state,to_state}

# Example PromQL

Share of translations that fell back to the source text:

	sum(rate(translation_requests_total{result="fallback"}[5m]))
	  / sum(rate(translation_requests_total[5m]))
*/
package metrics
