// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package validation wraps go-playground/validator with a shared instance and
the project's custom tags.

Custom tags:

  - notblank: string is not empty after trimming whitespace
  - recipeid: external recipe identifier (letters, digits, '_' and '-', at
    most 64 characters)

Field names in error messages come from the json tag, so clients see the same
names they sent:

	var req models.RecipeInput
	if err := validation.ValidateStruct(&req); err != nil {
	    apiErr := err.ToAPIError()
	    // apiErr.Code == "VALIDATION_ERROR"
	}

The validator is safe for concurrent use and caches struct metadata after the
first call.
*/
package validation
