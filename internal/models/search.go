// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package models

// LocalFilter selects stored recipes by case-insensitive substring.
//
// Each field holds alternatives that are OR'd together (typically the term as
// typed plus its translation). Non-empty fields are AND'd. An empty filter
// matches every listed recipe.
type LocalFilter struct {
	Name        []string
	Ingredients []string
	Category    []string
	Area        []string
}

// IsEmpty reports whether no field has an alternative.
func (f LocalFilter) IsEmpty() bool {
	return len(f.Name) == 0 && len(f.Ingredients) == 0 && len(f.Category) == 0 && len(f.Area) == 0
}
