// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package ingest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/receitas/internal/catalog"
	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/metrics"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/translate"
)

// ErrRecipeNotFound is returned when neither the store nor the catalog has
// the requested recipe.
var ErrRecipeNotFound = errors.New("recipe not found")

// Import outcomes, used as metric labels.
const (
	outcomeCreated  = "created"
	outcomeRepaired = "repaired"
	outcomeExisting = "existing"

	failureNotFound   = "not_found"
	failureStoreError = "store_error"
)

// Store is the persistence the orchestrator needs. *database.DB satisfies it.
type Store interface {
	GetOrCreateRecipe(ctx context.Context, externalID string) (*models.Recipe, bool, error)
	GetRecipeByExternalID(ctx context.Context, externalID string) (*models.Recipe, error)
	UpdateRecipeContent(ctx context.Context, r *models.Recipe) error
	SearchLocal(ctx context.Context, f models.LocalFilter) ([]models.Recipe, error)
}

// Catalog is the translated catalog surface. *catalog.Client satisfies it.
type Catalog interface {
	GetByID(ctx context.Context, externalID string) (*models.CandidateRecipe, bool)
	Summaries(ctx context.Context, queryType, value string) []models.RecipeSummary
}

// Config holds the orchestrator settings.
type Config struct {
	// UserLang is the language recipes are stored in and users search in.
	UserLang string
	// PageSize is the number of search results per page.
	PageSize int
	// ImportTimeout bounds one catalog import. The import is detached from
	// the request that started it, since concurrent viewers share it.
	ImportTimeout time.Duration
}

// DefaultPageSize is used when Config.PageSize is not positive.
const DefaultPageSize = 9

// DefaultImportTimeout is used when Config.ImportTimeout is not positive.
const DefaultImportTimeout = 60 * time.Second

// NewConfig derives the orchestrator settings from the application config.
func NewConfig(cfg *config.Config) Config {
	return Config{
		UserLang: cfg.Translation.SourceLang,
		PageSize: cfg.Search.PageSize,
	}
}

// Orchestrator coordinates the store, the catalog and the translator.
type Orchestrator struct {
	store      Store
	catalog    Catalog
	translator translate.Translator
	cfg        Config
	fetches    singleflight.Group
	logger     zerolog.Logger
}

// New builds an orchestrator.
func New(store Store, cat Catalog, translator translate.Translator, cfg Config) *Orchestrator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.UserLang == "" {
		cfg.UserLang = "pt"
	}
	if cfg.ImportTimeout <= 0 {
		cfg.ImportTimeout = DefaultImportTimeout
	}
	return &Orchestrator{
		store:      store,
		catalog:    cat,
		translator: translator,
		cfg:        cfg,
		logger:     logging.WithComponent("ingest"),
	}
}

// Detail returns the populated recipe for externalID, importing it from the
// catalog on first view and repairing it when an earlier import left it
// empty.
func (o *Orchestrator) Detail(ctx context.Context, externalID string) (*models.Recipe, error) {
	externalID = strings.TrimSpace(externalID)

	nativeID, isCatalog := catalog.NativeID(externalID)
	if !isCatalog {
		return o.localDetail(ctx, externalID)
	}
	externalID = catalog.ExternalID(nativeID)

	ch := o.fetches.DoChan(externalID, func() (interface{}, error) {
		importCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), o.cfg.ImportTimeout)
		defer cancel()
		return o.importRecipe(importCtx, externalID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneRecipe(res.Val.(*models.Recipe)), nil
	}
}

// cloneRecipe copies r deeply enough that callers sharing a fetch can
// modify their copy.
func cloneRecipe(r *models.Recipe) *models.Recipe {
	c := *r
	c.Category = slices.Clone(r.Category)
	c.Area = slices.Clone(r.Area)
	c.Ingredients = slices.Clone(r.Ingredients)
	return &c
}

func (o *Orchestrator) localDetail(ctx context.Context, externalID string) (*models.Recipe, error) {
	r, err := o.store.GetRecipeByExternalID(ctx, externalID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, externalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe %s: %w", externalID, err)
	}
	return r, nil
}

func (o *Orchestrator) importRecipe(ctx context.Context, externalID string) (*models.Recipe, error) {
	r, created, err := o.store.GetOrCreateRecipe(ctx, externalID)
	if errors.Is(err, database.ErrInvalidRecipe) {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, externalID)
	}
	if err != nil {
		metrics.RecordRecipeImportFailure(failureStoreError)
		return nil, fmt.Errorf("failed to get or create recipe %s: %w", externalID, err)
	}

	if !created && r.IsPopulated() {
		metrics.RecordRecipeImport(outcomeExisting)
		return r, nil
	}

	cand, ok := o.catalog.GetByID(ctx, externalID)
	if !ok {
		metrics.RecordRecipeImportFailure(failureNotFound)
		o.logger.Warn().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Str("external_id", externalID).
			Bool("created", created).
			Msg("Catalog has no record; keeping empty row for repair")
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, externalID)
	}

	cand.ApplyTo(r)
	if err := o.store.UpdateRecipeContent(ctx, r); err != nil {
		metrics.RecordRecipeImportFailure(failureStoreError)
		return nil, fmt.Errorf("failed to store recipe %s: %w", externalID, err)
	}

	outcome := outcomeRepaired
	if created {
		outcome = outcomeCreated
	}
	metrics.RecordRecipeImport(outcome)

	event := o.logger.Info()
	if cand.Untranslated > 0 {
		event = o.logger.Warn().Int("untranslated_fields", cand.Untranslated)
	}
	event.
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("external_id", externalID).
		Str("outcome", outcome).
		Msg("Imported catalog recipe")

	return r, nil
}
