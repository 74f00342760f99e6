// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"context"
	"errors"
	"net/url"

	"github.com/tomtom215/receitas/internal/breaker"
)

// BreakerName labels the catalog breaker in metrics.
const BreakerName = "themealdb-api"

// CircuitBreakerClient guards an API with a circuit breaker. A lookup that
// finds nothing counts as a success.
type CircuitBreakerClient struct {
	next API
	cb   *breaker.Breaker[[]Meal]
}

// NewCircuitBreakerClient wraps next with the default breaker settings.
func NewCircuitBreakerClient(next API) *CircuitBreakerClient {
	return NewCircuitBreakerClientWithSettings(next, breaker.DefaultSettings())
}

// NewCircuitBreakerClientWithSettings wraps next with explicit settings.
func NewCircuitBreakerClientWithSettings(next API, s breaker.Settings) *CircuitBreakerClient {
	return &CircuitBreakerClient{
		next: next,
		cb:   breaker.New[[]Meal](BreakerName, s),
	}
}

// State returns the breaker state.
func (c *CircuitBreakerClient) State() string {
	return c.cb.State()
}

// SearchByName implements API.
func (c *CircuitBreakerClient) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	return c.cb.Execute(func() ([]Meal, error) { return c.next.SearchByName(ctx, name) })
}

// Filter implements API.
func (c *CircuitBreakerClient) Filter(ctx context.Context, params url.Values) ([]Meal, error) {
	return c.cb.Execute(func() ([]Meal, error) { return c.next.Filter(ctx, params) })
}

// Lookup implements API.
func (c *CircuitBreakerClient) Lookup(ctx context.Context, nativeID string) (*Meal, error) {
	var notFound error
	meals, err := c.cb.Execute(func() ([]Meal, error) {
		m, err := c.next.Lookup(ctx, nativeID)
		if errors.Is(err, ErrNotFound) {
			notFound = err
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []Meal{*m}, nil
	})
	if err != nil {
		return nil, err
	}
	if notFound != nil {
		return nil, notFound
	}
	return &meals[0], nil
}
