// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/metrics"
)

// Query types, used as the query_type label and log field.
const (
	QueryName       = "name"
	QueryIngredient = "ingredient"
	QueryCategory   = "category"
	QueryArea       = "area"
	QueryLookup     = "lookup"
	QueryFilter     = "filter"
)

const (
	maxBodySize      = 4 << 20
	maxErrorBodySize = 512
	maxRetryAfter    = 10 * time.Second
)

// ErrNotFound is returned by Lookup when the catalog has no such meal.
var ErrNotFound = errors.New("meal not found")

// StatusError is a non-2xx catalog response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned HTTP %d: %s", e.StatusCode, e.Body)
}

// API is the raw catalog surface. Every method returns an error on failure;
// an empty result is not an error except for Lookup.
type API interface {
	SearchByName(ctx context.Context, name string) ([]Meal, error)
	Filter(ctx context.Context, params url.Values) ([]Meal, error)
	Lookup(ctx context.Context, nativeID string) (*Meal, error)
}

// APIClient talks to the catalog over HTTP.
type APIClient struct {
	baseURL        string
	client         *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewAPIClient creates an HTTP catalog client. The base URL must end with a
// slash; one is added when missing.
func NewAPIClient(cfg *config.CatalogConfig) *APIClient {
	base := cfg.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &APIClient{
		baseURL:        base,
		client:         &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
	}
}

// SearchByName calls search.php?s=.
func (c *APIClient) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	return c.get(ctx, QueryName, "search.php", url.Values{"s": {name}})
}

// Filter calls filter.php with any combination of i, c and a.
func (c *APIClient) Filter(ctx context.Context, params url.Values) ([]Meal, error) {
	return c.get(ctx, filterQueryType(params), "filter.php", params)
}

// filterQueryType labels a single-key filter by its key.
func filterQueryType(params url.Values) string {
	if len(params) != 1 {
		return QueryFilter
	}
	switch {
	case params.Has("i"):
		return QueryIngredient
	case params.Has("c"):
		return QueryCategory
	case params.Has("a"):
		return QueryArea
	}
	return QueryFilter
}

// Lookup calls lookup.php?i= and returns ErrNotFound when meals is empty.
func (c *APIClient) Lookup(ctx context.Context, nativeID string) (*Meal, error) {
	meals, err := c.get(ctx, QueryLookup, "lookup.php", url.Values{"i": {nativeID}})
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, nativeID)
	}
	return &meals[0], nil
}

func (c *APIClient) get(ctx context.Context, queryType, endpoint string, params url.Values) ([]Meal, error) {
	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	start := time.Now()

	attempts := 0
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempts++
		if attempts > 1 {
			metrics.CatalogRetries.WithLabelValues(queryType).Inc()
		}
		return c.do(ctx, reqURL)
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(uint(c.maxRetries+1)),
	)
	if err != nil {
		metrics.RecordCatalogRequest(queryType, "error", time.Since(start))
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}

	var envelope mealsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.RecordCatalogRequest(queryType, "error", time.Since(start))
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	result := "success"
	if len(envelope.Meals) == 0 {
		result = "empty"
	}
	metrics.RecordCatalogRequest(queryType, result, time.Since(start))
	return envelope.Meals, nil
}

func (c *APIClient) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.retryBaseDelay > 0 {
		b.InitialInterval = c.retryBaseDelay
	}
	b.Multiplier = 2
	b.MaxInterval = maxRetryAfter
	return b
}

// do performs one GET. Throttling responses are retryable; everything else
// is permanent.
func (c *APIClient) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode == http.StatusServiceUnavailable:
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
		if secs := retryAfterSeconds(resp.Header.Get("Retry-After")); secs > 0 {
			return nil, fmt.Errorf("%w: %w", statusErr, backoff.RetryAfter(secs))
		}
		return nil, statusErr
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, backoff.Permanent(&StatusError{StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

// retryAfterSeconds parses a delta-seconds Retry-After header, capped.
// HTTP-date values are ignored.
func retryAfterSeconds(header string) int {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	if limit := int(maxRetryAfter / time.Second); secs > limit {
		return limit
	}
	return secs
}

func readErrorBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(unreadable body)"
	}
	return strings.TrimSpace(string(b))
}
