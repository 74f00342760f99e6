// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/receitas/internal/cache"
	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/metrics"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/translate"
)

// unnamedRecipe replaces a missing strMeal.
const unnamedRecipe = "Receita Sem Nome"

// Filters selects catalog recipes. At least one field must be set.
type Filters struct {
	// Ingredient is a comma-separated list in the user's language. Only the
	// first term is sent.
	Ingredient string
	Area       string
	Category   string
}

// String renders the filters for logs.
func (f Filters) String() string {
	return "ingredient=" + f.Ingredient + " area=" + f.Area + " category=" + f.Category
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return strings.TrimSpace(f.Ingredient) == "" &&
		strings.TrimSpace(f.Area) == "" &&
		strings.TrimSpace(f.Category) == ""
}

// Client translates between the user's language and the catalog's and hides
// catalog failures from callers.
type Client struct {
	api         API
	translator  translate.Translator
	userLang    string
	catalogLang string
	logger      zerolog.Logger
	pages       *cache.LRU[[]models.RecipeSummary]
}

// NewClient builds a catalog client over api. Languages come from the
// translation config: SourceLang is what users type, TargetLang is what the
// catalog understands.
func NewClient(api API, translator translate.Translator, cfg *config.TranslationConfig) *Client {
	return &Client{
		api:         api,
		translator:  translator,
		userLang:    cfg.SourceLang,
		catalogLang: cfg.TargetLang,
		logger:      logging.WithComponent("catalog"),
	}
}

// WithSummaryCache keeps successful search pages for ttl, up to size
// queries. A non-positive size leaves caching off.
func (c *Client) WithSummaryCache(size int, ttl time.Duration) *Client {
	if size > 0 {
		c.pages = cache.NewLRU[[]models.RecipeSummary](size, ttl)
	}
	return c
}

// Search runs one filter query. Area and category are sent as given; the
// first ingredient term is translated into the catalog language first.
// Matches are summary-only records with the name translated.
func (c *Client) Search(ctx context.Context, f Filters) []models.CandidateRecipe {
	if f.IsEmpty() {
		c.logger.Warn().Msg("Catalog search called without filters")
		return []models.CandidateRecipe{}
	}

	out, err := c.search(ctx, f)
	if err != nil {
		c.logFailure(ctx, QueryFilter, f.String(), err)
		return []models.CandidateRecipe{}
	}
	return out
}

func (c *Client) search(ctx context.Context, f Filters) ([]models.CandidateRecipe, error) {
	meals, err := c.filter(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]models.CandidateRecipe, 0, len(meals))
	for i := range meals {
		m := &meals[i]
		if m.ID == "" {
			continue
		}
		name := c.mealName(ctx, m.Name)
		out = append(out, models.CandidateRecipe{
			ExternalID:   ExternalID(m.ID),
			Name:         name.Text,
			ImageURL:     m.Thumbnail,
			Untranslated: boolToInt(name.Fallback),
		})
	}
	return out, nil
}

// filter builds the filter.php query for f and runs it. Only the first
// ingredient term is sent, translated into the catalog language.
func (c *Client) filter(ctx context.Context, f Filters) ([]Meal, error) {
	params := url.Values{}
	if first := firstTerm(f.Ingredient); first != "" {
		if term := c.toCatalog(ctx, first); term != "" {
			params.Set("i", term)
		}
	}
	if area := strings.TrimSpace(f.Area); area != "" {
		params.Set("a", area)
	}
	if category := strings.TrimSpace(f.Category); category != "" {
		params.Set("c", category)
	}
	if len(params) == 0 {
		return []Meal{}, nil
	}
	return c.api.Filter(ctx, params)
}

// GetByID fetches and translates the full record for a catalog identifier.
// It reports false for unknown prefixes, missing meals and any failure.
func (c *Client) GetByID(ctx context.Context, externalID string) (*models.CandidateRecipe, bool) {
	nativeID, ok := NativeID(externalID)
	if !ok {
		c.logger.Warn().Str("external_id", externalID).Msg("Not a catalog identifier")
		return nil, false
	}

	meal, err := c.api.Lookup(ctx, nativeID)
	if err != nil {
		c.logFailure(ctx, QueryLookup, nativeID, err)
		return nil, false
	}

	return c.candidate(ctx, meal), true
}

// candidate translates every free-text field of a full meal record.
func (c *Client) candidate(ctx context.Context, m *Meal) *models.CandidateRecipe {
	fallbacks := 0
	tr := func(text string) string {
		res := c.toUser(ctx, text)
		if res.Fallback {
			fallbacks++
		}
		return res.Text
	}

	name := strings.TrimSpace(m.Name)
	if name == "" {
		name = unnamedRecipe
	} else {
		name = tr(name)
	}

	slots := m.Slots()
	translated := make([]models.IngredientSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsEmpty() {
			continue
		}
		slot := models.IngredientSlot{Ingredient: tr(strings.TrimSpace(s.Ingredient))}
		if measure := strings.TrimSpace(s.Measure); measure != "" {
			slot.Measure = tr(measure)
		}
		translated = append(translated, slot)
	}

	cand := &models.CandidateRecipe{
		ExternalID:   ExternalID(m.ID),
		Name:         name,
		ImageURL:     m.Thumbnail,
		Slots:        slots,
		Ingredients:  IngredientLines(translated),
		Instructions: tr(m.Instructions),
		Category:     []string{},
		Area:         []string{},
		VideoURL:     m.YouTube,
		SourceURL:    m.Source,
	}
	if category := strings.TrimSpace(m.Category); category != "" {
		cand.Category = []string{tr(category)}
	}
	if area := strings.TrimSpace(m.Area); area != "" {
		cand.Area = []string{tr(area)}
	}
	cand.Untranslated = fallbacks
	return cand
}

// Summaries runs one search-page query. value is in the user's language and
// is translated first; result names are translated back. Ingredient,
// category and area queries go through the same filter path as Search.
func (c *Client) Summaries(ctx context.Context, queryType, value string) []models.RecipeSummary {
	value = strings.TrimSpace(value)
	if value == "" {
		return []models.RecipeSummary{}
	}
	key := queryType + "\x00" + strings.ToLower(value)
	if c.pages != nil {
		hit, ok := c.pages.Get(key)
		metrics.RecordCatalogCacheLookup(ok)
		if ok {
			return append([]models.RecipeSummary(nil), hit...)
		}
	}
	var (
		out []models.RecipeSummary
		err error
	)
	switch queryType {
	case QueryName:
		out, err = c.byName(ctx, value)
	case QueryIngredient:
		out, err = c.filterSummaries(ctx, Filters{Ingredient: value})
	case QueryCategory:
		out, err = c.filterSummaries(ctx, Filters{Category: c.toCatalog(ctx, value)})
	case QueryArea:
		out, err = c.filterSummaries(ctx, Filters{Area: c.toCatalog(ctx, value)})
	default:
		c.logger.Warn().Str("query_type", queryType).Msg("Unknown catalog query type")
		return []models.RecipeSummary{}
	}
	if err != nil {
		c.logFailure(ctx, queryType, value, err)
		return []models.RecipeSummary{}
	}

	if c.pages != nil {
		c.pages.Add(key, append([]models.RecipeSummary(nil), out...))
	}
	return out
}

func (c *Client) byName(ctx context.Context, value string) ([]models.RecipeSummary, error) {
	meals, err := c.api.SearchByName(ctx, c.toCatalog(ctx, value))
	if err != nil {
		return nil, err
	}
	out := make([]models.RecipeSummary, 0, len(meals))
	for i := range meals {
		if meals[i].ID == "" {
			continue
		}
		out = append(out, models.RecipeSummary{
			ExternalID: ExternalID(meals[i].ID),
			Name:       c.mealName(ctx, meals[i].Name).Text,
			ImageURL:   meals[i].Thumbnail,
			Source:     models.SourceCatalog,
		})
	}
	return out, nil
}

func (c *Client) filterSummaries(ctx context.Context, f Filters) ([]models.RecipeSummary, error) {
	found, err := c.search(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]models.RecipeSummary, 0, len(found))
	for i := range found {
		out = append(out, models.RecipeSummary{
			ExternalID: found[i].ExternalID,
			Name:       found[i].Name,
			ImageURL:   found[i].ImageURL,
			Source:     models.SourceCatalog,
		})
	}
	return out, nil
}

func (c *Client) toCatalog(ctx context.Context, text string) string {
	return c.translator.Translate(ctx, text, c.userLang, c.catalogLang).Text
}

func (c *Client) toUser(ctx context.Context, text string) translate.Result {
	return c.translator.Translate(ctx, text, c.catalogLang, c.userLang)
}

// mealName translates a listing name, substituting unnamedRecipe for a
// missing strMeal.
func (c *Client) mealName(ctx context.Context, name string) translate.Result {
	if strings.TrimSpace(name) == "" {
		return translate.Result{Text: unnamedRecipe}
	}
	return c.toUser(ctx, name)
}

func (c *Client) logFailure(ctx context.Context, queryType, value string, err error) {
	c.logger.Warn().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("query_type", queryType).
		Str("query_value", value).
		Err(err).
		Msg("Catalog query failed")
}

// firstTerm returns the first non-blank comma-separated term.
func firstTerm(list string) string {
	if terms := SplitTerms(list); len(terms) > 0 {
		return terms[0]
	}
	return ""
}

// SplitTerms splits a comma-separated list, trimming and dropping blanks.
func SplitTerms(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
