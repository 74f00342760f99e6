// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	DBTransactionRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_transaction_retries_total",
			Help: "Transactions retried after a write conflict",
		},
		[]string{"operation"},
	)

	// Translation
	TranslationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_requests_total",
			Help: "Translation calls by outcome",
		},
		[]string{"result"}, // translated, fallback, skipped, rejected
	)

	TranslationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translation_duration_seconds",
			Help:    "Duration of translation service calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// Catalog
	CatalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Recipe catalog API calls by query type and outcome",
		},
		[]string{"query_type", "result"}, // result: success, empty, error
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of recipe catalog API calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type"},
	)

	CatalogRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_retries_total",
			Help: "Recipe catalog calls retried after a throttling response",
		},
		[]string{"query_type"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Search page cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	// Ingestion and community
	RecipesImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipes_imported_total",
			Help: "Detail views resolved against the catalog by outcome",
		},
		[]string{"outcome"}, // created, repaired, existing
	)

	RecipeImportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_import_failures_total",
			Help: "Detail views that could not be populated from the catalog",
		},
		[]string{"reason"}, // not_found, catalog_error, store_error
	)

	RatingsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Total number of rating upserts",
		},
	)

	CommentsPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_posted_total",
			Help: "Total number of comments posted",
		},
	)

	FavoritesToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "favorites_toggled_total",
			Help: "Favorite toggles by resulting action",
		},
		[]string{"action"}, // added, removed
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records the duration and, on failure, the error class of a query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyDBError(err)).Inc()
	}
}

// classifyDBError keeps the error_type label bounded.
func classifyDBError(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Conflict on update"), strings.Contains(msg, "Transaction conflict"):
		return "conflict"
	case strings.Contains(msg, "Constraint Error"), strings.Contains(msg, "violates"):
		return "constraint"
	case strings.Contains(msg, "no rows"):
		return "not_found"
	default:
		return "other"
	}
}

// RecordAPIRequest records an API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// Translation outcomes.
const (
	TranslationTranslated = "translated"
	TranslationFallback   = "fallback"
	TranslationSkipped    = "skipped"
	TranslationRejected   = "rejected"
)

// RecordTranslation records one translation call. Skipped calls (blank input)
// carry no duration.
func RecordTranslation(result string, duration time.Duration) {
	TranslationRequests.WithLabelValues(result).Inc()
	if result != TranslationSkipped && result != TranslationRejected {
		TranslationDuration.Observe(duration.Seconds())
	}
}

// RecordCatalogRequest records one catalog API call.
func RecordCatalogRequest(queryType, result string, duration time.Duration) {
	CatalogRequests.WithLabelValues(queryType, result).Inc()
	CatalogRequestDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

// RecordCatalogCacheLookup records one search page cache lookup.
func RecordCatalogCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CatalogCacheLookups.WithLabelValues(result).Inc()
}

// RecordRecipeImport records how a detail view resolved.
func RecordRecipeImport(outcome string) {
	RecipesImported.WithLabelValues(outcome).Inc()
}

// RecordRecipeImportFailure records a detail view that stayed empty.
func RecordRecipeImportFailure(reason string) {
	RecipeImportFailures.WithLabelValues(reason).Inc()
}

// RecordFavoriteToggle records the resulting favorite state.
func RecordFavoriteToggle(added bool) {
	action := "removed"
	if added {
		action = "added"
	}
	FavoritesToggled.WithLabelValues(action).Inc()
}
