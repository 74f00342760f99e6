// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"net/http"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/ingest"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/models"
)

// TopRecipes lists the best rated public recipes.
func (h *Handler) TopRecipes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	recipes, err := h.db.TopRated(r.Context(), h.rankingLimit())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(summaries(recipes))
}

// SearchRecipes runs the catalog and local search. Query parameters keep the
// names used by the web front end: nome, ingredientes, categoria, area, page.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	params := r.URL.Query()

	q := ingest.Query{
		Name:        params.Get("nome"),
		Ingredients: params.Get("ingredientes"),
		Category:    params.Get("categoria"),
		Area:        params.Get("area"),
		Page:        ingest.ParsePage(params.Get("page")),
	}

	page, err := h.recipes.Search(r.Context(), q)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	rw.SuccessWithPagination(page.Items, &PaginationMeta{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		Count:      len(page.Items),
		HasMore:    page.Page < page.TotalPages,
	})
}

// GetRecipe returns the detail view of a recipe, importing it from the
// catalog on first view. Authenticated callers also get their own score and
// favorite flag.
func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	externalID, ok := externalIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	recipe, err := h.recipes.Detail(ctx, externalID)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	subject := auth.GetAuthSubject(ctx)
	if !visibleTo(recipe, subject) {
		rw.NotFound("Recipe not found")
		return
	}

	detail := models.RecipeDetail{Recipe: recipe}
	if detail.Ratings, err = h.db.ListRatings(ctx, recipe.ID); err != nil {
		rw.DatabaseError(err)
		return
	}
	if detail.Comments, err = h.db.ListComments(ctx, recipe.ID); err != nil {
		rw.DatabaseError(err)
		return
	}
	if detail.FavoriteCount, err = h.db.CountFavorites(ctx, recipe.ID); err != nil {
		rw.DatabaseError(err)
		return
	}

	if subject != nil {
		if detail.IsFavorite, err = h.db.IsFavorite(ctx, subject.ID, recipe.ID); err != nil {
			rw.DatabaseError(err)
			return
		}
		if detail.UserScore, err = h.db.GetUserScore(ctx, subject.ID, recipe.ID); err != nil {
			rw.DatabaseError(err)
			return
		}
	}

	rw.Success(detail)
}

// SubmitRecipe stores an original recipe from the caller. It stays pending
// until a moderator approves it.
func (h *Handler) SubmitRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	subject := auth.GetAuthSubject(r.Context())

	var in models.RecipeInput
	if !decodeAndValidate(rw, w, r, &in) {
		return
	}

	recipe, err := h.db.CreateSubmittedRecipe(r.Context(), subject.ID, &in)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("external_id", recipe.ExternalID).
		Str("author", subject.ID).
		Msg("Recipe submitted for moderation")
	rw.Created(recipe)
}
