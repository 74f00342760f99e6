// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/logging"
)

// PendingRecipes lists submissions waiting for a moderator, oldest first.
func (h *Handler) PendingRecipes(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	recipes, err := h.db.ListPending(r.Context())
	if err != nil {
		rw.DatabaseError(err)
		return
	}
	rw.Success(recipes)
}

// ApproveRecipe publishes a pending submission.
func (h *Handler) ApproveRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")

	if err := h.db.ApproveRecipe(r.Context(), id); err != nil {
		writeStoreError(rw, err)
		return
	}

	h.logModeration(r, id, "approved")
	rw.Success(map[string]string{"id": id, "status": "approved"})
}

// RejectRecipe deletes a recipe with its ratings, comments and favorites.
func (h *Handler) RejectRecipe(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")

	if err := h.db.RejectRecipe(r.Context(), id); err != nil {
		writeStoreError(rw, err)
		return
	}

	h.logModeration(r, id, "rejected")
	rw.NoContent()
}

func (h *Handler) logModeration(r *http.Request, id, action string) {
	logging.Ctx(r.Context()).Info().
		Str("recipe_id", id).
		Str("action", action).
		Str("moderator", auth.GetAuthSubject(r.Context()).ID).
		Msg("Recipe moderated")
}
