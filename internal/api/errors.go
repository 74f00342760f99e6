// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"errors"

	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/ingest"
)

// Common API errors
var (
	// ErrEmptyBody indicates a write request without a JSON body.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge indicates a request body over maxBodyBytes.
	ErrBodyTooLarge = errors.New("request body too large")
)

// writeStoreError maps storage and ingestion errors to responses. Anything
// unrecognised is a 500.
func writeStoreError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, ingest.ErrRecipeNotFound), errors.Is(err, database.ErrNotFound):
		rw.NotFound("Recipe not found")
	case errors.Is(err, database.ErrInvalidScore):
		rw.ValidationError("score must be between 1 and 5", map[string]interface{}{"field": "score"})
	case errors.Is(err, database.ErrInvalidRecipe), errors.Is(err, database.ErrInvalidInput):
		rw.ValidationError(err.Error(), nil)
	default:
		rw.DatabaseError(err)
	}
}
