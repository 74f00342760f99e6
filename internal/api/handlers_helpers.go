// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/catalog"
	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/validation"
)

// maxBodyBytes caps JSON request bodies. A submitted recipe is the largest.
const maxBodyBytes = 64 << 10

// ErrCodePayloadTooLarge is returned for bodies over maxBodyBytes.
const ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"

// decodeJSON reads one JSON object from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return ErrBodyTooLarge
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// decodeAndValidate decodes the body into dst and runs its validate tags.
// It writes the error response and returns false on failure.
func decodeAndValidate(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		switch {
		case errors.Is(err, ErrBodyTooLarge):
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, err.Error())
		case errors.Is(err, ErrEmptyBody):
			rw.BadRequest(err.Error())
		default:
			rw.BadRequest("Invalid JSON body")
		}
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// canonicalID maps legacy catalog prefixes onto the current one.
func canonicalID(externalID string) string {
	externalID = strings.TrimSpace(externalID)
	if native, ok := catalog.NativeID(externalID); ok {
		return catalog.ExternalID(native)
	}
	return externalID
}

// externalIDParam reads and validates the {externalID} route parameter.
func externalIDParam(r *http.Request) (string, bool) {
	id := canonicalID(chi.URLParam(r, "externalID"))
	if validation.ValidateVar(id, "recipeid") != nil {
		return "", false
	}
	return id, true
}

// visibleTo reports whether subject may see recipe. Listed recipes are
// public. Pending submissions are visible to their author and admins.
func visibleTo(recipe *models.Recipe, subject *auth.AuthSubject) bool {
	if recipe.Status == models.StatusApproved && recipe.IsPopulated() {
		return true
	}
	if subject == nil {
		return false
	}
	return subject.IsAdmin() || (recipe.AuthorID != "" && recipe.AuthorID == subject.ID)
}

// storedRecipe loads a recipe that must already exist and be visible to the
// caller. Rating, commenting and favoriting never import from the catalog.
func (h *Handler) storedRecipe(ctx context.Context, externalID string) (*models.Recipe, error) {
	recipe, err := h.db.GetRecipeByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(recipe, auth.GetAuthSubject(ctx)) {
		return nil, fmt.Errorf("%w: %s", database.ErrNotFound, externalID)
	}
	return recipe, nil
}

func summaries(recipes []models.Recipe) []models.RecipeSummary {
	out := make([]models.RecipeSummary, len(recipes))
	for i := range recipes {
		out[i] = recipes[i].Summary()
	}
	return out
}
