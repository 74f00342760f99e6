// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package models

import "strings"

// MaxIngredientSlots is the number of numbered ingredient/measure pairs a
// catalog record carries.
const MaxIngredientSlots = 20

// IngredientSlot is one numbered (ingredient, measure) pair as returned by the
// catalog. Either side may be empty.
type IngredientSlot struct {
	Ingredient string
	Measure    string
}

// IsEmpty reports whether the slot has no ingredient. A measure without an
// ingredient is skipped too.
func (s IngredientSlot) IsEmpty() bool {
	return strings.TrimSpace(s.Ingredient) == ""
}

// CandidateRecipe is a catalog record after translation, before it is merged
// into a Recipe.
type CandidateRecipe struct {
	ExternalID   string
	Name         string
	ImageURL     string
	Slots        []IngredientSlot
	Ingredients  []string // display lines built from Slots, translated
	Instructions string
	Category     []string
	Area         []string
	VideoURL     string
	SourceURL    string

	// Untranslated counts fields that fell back to the source text.
	Untranslated int
}

// ApplyTo overwrites the content fields of r with the candidate and marks it
// approved. Identity, rating and authorship are left alone.
func (c *CandidateRecipe) ApplyTo(r *Recipe) {
	r.Name = c.Name
	r.Instructions = c.Instructions
	r.Category = NewStringList(c.Category)
	r.Area = NewStringList(c.Area)
	r.Ingredients = NewStringList(c.Ingredients)
	r.ImageURL = c.ImageURL
	r.VideoURL = c.VideoURL
	r.SourceURL = c.SourceURL
	r.Status = StatusApproved
}
