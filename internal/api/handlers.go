// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/ingest"
)

// Default listing sizes used when the configuration leaves them unset.
const (
	DefaultFavoritesPageSize = 6
	DefaultRankingLimit      = 12
)

// BreakerState reports the state of a circuit breaker for the readiness probe.
type BreakerState interface {
	State() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor
//   - handlers_helpers.go: request decoding and recipe lookup
//   - handlers_health.go: liveness and readiness
//   - handlers_recipes.go: ranking, search, detail, submission
//   - handlers_community.go: ratings, comments, favorites, profile
//   - handlers_moderation.go: pending queue, approve, reject
type Handler struct {
	db        *database.DB
	recipes   *ingest.Orchestrator
	config    *config.Config
	startTime time.Time

	mu       sync.RWMutex
	breakers map[string]BreakerState
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(db, orchestrator, cfg)
//	router := api.NewRouter(handler, authMiddleware, api.NewChiMiddlewareFromSecurity(&cfg.Security))
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(db *database.DB, recipes *ingest.Orchestrator, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		recipes:   recipes,
		config:    cfg,
		startTime: time.Now(),
		breakers:  make(map[string]BreakerState),
	}
}

// RegisterBreaker exposes a circuit breaker's state on the readiness probe.
func (h *Handler) RegisterBreaker(name string, b BreakerState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breakers[name] = b
}

func (h *Handler) breakerStates() map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	names := make([]string, 0, len(h.breakers))
	for name := range h.breakers {
		names = append(names, name)
	}
	sort.Strings(names)

	states := make(map[string]string, len(names))
	for _, name := range names {
		states[name] = h.breakers[name].State()
	}
	return states
}

func (h *Handler) favoritesPageSize() int {
	if h.config != nil && h.config.Search.FavoritesPageSize > 0 {
		return h.config.Search.FavoritesPageSize
	}
	return DefaultFavoritesPageSize
}

func (h *Handler) rankingLimit() int {
	if h.config != nil && h.config.Search.RankingLimit > 0 {
		return h.config.Search.RankingLimit
	}
	return DefaultRankingLimit
}
