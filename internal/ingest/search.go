// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package ingest

import (
	"context"
	"strings"

	"github.com/tomtom215/receitas/internal/catalog"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/translate"
)

// Query is a search request in the user's language. Ingredients is a
// comma-separated list.
type Query struct {
	Name        string
	Ingredients string
	Category    string
	Area        string
	Page        int
}

// IsEmpty reports whether no search field is set.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Name) == "" &&
		len(catalog.SplitTerms(q.Ingredients)) == 0 &&
		strings.TrimSpace(q.Category) == "" &&
		strings.TrimSpace(q.Area) == ""
}

// SearchPage is one page of search results.
type SearchPage struct {
	Items      []models.RecipeSummary `json:"items"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"total_pages"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"page_size"`
}

// Search runs the catalog queries and the local pass for q and returns the
// requested page of the concatenated results.
func (o *Orchestrator) Search(ctx context.Context, q Query) (*SearchPage, error) {
	all := o.catalogSummaries(ctx, q)
	all = append(all, o.localSummaries(ctx, q)...)

	p := Paginate(len(all), q.Page, o.cfg.PageSize)
	return &SearchPage{
		Items:      append([]models.RecipeSummary{}, all[p.Offset:p.Offset+p.Count]...),
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Total:      len(all),
		PageSize:   o.cfg.PageSize,
	}, nil
}

// catalogSummaries queries the catalog sequentially: name, each ingredient,
// category, area.
func (o *Orchestrator) catalogSummaries(ctx context.Context, q Query) []models.RecipeSummary {
	out := []models.RecipeSummary{}

	if name := strings.TrimSpace(q.Name); name != "" {
		out = append(out, o.catalog.Summaries(ctx, catalog.QueryName, name)...)
	}
	for _, ingredient := range catalog.SplitTerms(q.Ingredients) {
		out = append(out, o.catalog.Summaries(ctx, catalog.QueryIngredient, ingredient)...)
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		out = append(out, o.catalog.Summaries(ctx, catalog.QueryCategory, category)...)
	}
	if area := strings.TrimSpace(q.Area); area != "" {
		out = append(out, o.catalog.Summaries(ctx, catalog.QueryArea, area)...)
	}
	return out
}

// localSummaries matches listed local recipes. Every term also matches its
// translation into the user's language, so "chicken" finds "Frango".
func (o *Orchestrator) localSummaries(ctx context.Context, q Query) []models.RecipeSummary {
	filter := models.LocalFilter{
		Name:     o.alternatives(ctx, q.Name),
		Category: o.alternatives(ctx, q.Category),
		Area:     o.alternatives(ctx, q.Area),
	}
	terms := catalog.SplitTerms(q.Ingredients)
	for i, res := range translate.TranslateAll(ctx, o.translator, terms, translate.AutoDetect, o.cfg.UserLang) {
		filter.Ingredients = append(filter.Ingredients, withTranslation(terms[i], res)...)
	}

	recipes, err := o.store.SearchLocal(ctx, filter)
	if err != nil {
		o.logger.Warn().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Err(err).
			Msg("Local recipe search failed")
		return []models.RecipeSummary{}
	}

	out := make([]models.RecipeSummary, len(recipes))
	for i := range recipes {
		out[i] = recipes[i].Summary()
	}
	return out
}

// alternatives returns term and its translation into the user's language,
// or nil for a blank term.
func (o *Orchestrator) alternatives(ctx context.Context, term string) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	return withTranslation(term, o.translator.Translate(ctx, term, translate.AutoDetect, o.cfg.UserLang))
}

// withTranslation pairs a non-blank term with its translation, dropping
// fallbacks and translations equal to the term.
func withTranslation(term string, res translate.Result) []string {
	if res.Fallback || strings.EqualFold(res.Text, term) || strings.TrimSpace(res.Text) == "" {
		return []string{term}
	}
	return []string{term, res.Text}
}
