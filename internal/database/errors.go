// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/receitas/internal/logging"
)

// Store errors
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidRecipe = errors.New("invalid recipe")
	ErrInvalidScore  = errors.New("score must be between 1 and 5")
	ErrInvalidInput  = errors.New("invalid input")
)

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource and explicitly ignores any error
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
