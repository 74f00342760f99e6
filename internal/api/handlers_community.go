// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"net/http"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/ingest"
	"github.com/tomtom215/receitas/internal/models"
)

// RateRecipe sets the caller's score for a recipe and returns the new
// average. Rating again replaces the earlier score.
func (h *Handler) RateRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	externalID, ok := externalIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	var req RatingRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	recipe, err := h.storedRecipe(ctx, externalID)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	subject := auth.GetAuthSubject(ctx)
	average, err := h.db.UpsertRating(ctx, subject.ID, recipe.ID, req.Score)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	rw.Success(RatingResponse{
		ExternalID:    recipe.ExternalID,
		Score:         req.Score,
		AverageRating: average,
	})
}

// CommentRecipe appends a comment from the caller.
func (h *Handler) CommentRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	externalID, ok := externalIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	var req CommentRequest
	if !decodeAndValidate(rw, w, r, &req) {
		return
	}

	recipe, err := h.storedRecipe(ctx, externalID)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	comment, err := h.db.AddComment(ctx, auth.GetAuthSubject(ctx).ID, recipe.ID, req.Body)
	if err != nil {
		writeStoreError(rw, err)
		return
	}
	rw.Created(comment)
}

// ToggleFavorite adds the recipe to the caller's favorites or removes it.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	externalID, ok := externalIDParam(r)
	if !ok {
		rw.NotFound("Recipe not found")
		return
	}

	recipe, err := h.storedRecipe(ctx, externalID)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	favorited, err := h.db.ToggleFavorite(ctx, auth.GetAuthSubject(ctx).ID, recipe.ID)
	if err != nil {
		writeStoreError(rw, err)
		return
	}

	count, err := h.db.CountFavorites(ctx, recipe.ID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.Success(FavoriteResponse{
		ExternalID:    recipe.ExternalID,
		Favorited:     favorited,
		FavoriteCount: count,
	})
}

// MyFavorites lists the caller's favorites, newest first, one page at a time.
func (h *Handler) MyFavorites(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()
	userID := auth.GetAuthSubject(ctx).ID

	total, err := h.db.CountUserFavorites(ctx, userID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	size := h.favoritesPageSize()
	p := ingest.Paginate(total, ingest.ParsePage(r.URL.Query().Get("page")), size)

	favorites := []models.Favorite{}
	if p.Count > 0 {
		if favorites, err = h.db.ListFavorites(ctx, userID, size, p.Offset); err != nil {
			rw.DatabaseError(err)
			return
		}
	}

	rw.SuccessWithPagination(favorites, &PaginationMeta{
		Page:       p.Page,
		PageSize:   size,
		TotalPages: p.TotalPages,
		Total:      total,
		Count:      len(favorites),
		HasMore:    p.Page < p.TotalPages,
	})
}

// MyProfile returns every favorite of the caller and the recipes they
// submitted, including ones still pending.
func (h *Handler) MyProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()
	userID := auth.GetAuthSubject(ctx).ID

	favorites, err := h.db.ListFavorites(ctx, userID, 0, 0)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	submitted, err := h.db.ListByAuthor(ctx, userID)
	if err != nil {
		rw.DatabaseError(err)
		return
	}

	rw.Success(models.Profile{
		UserID:    userID,
		Favorites: favorites,
		Submitted: summaries(submitted),
	})
}
