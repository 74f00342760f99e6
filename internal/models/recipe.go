// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package models

import (
	"strings"
	"time"
)

// Status is the moderation state of a recipe.
type Status string

const (
	// StatusApproved recipes are publicly listed. Catalog imports land here directly.
	StatusApproved Status = "approved"

	// StatusPending recipes wait for a moderator. User submissions start here.
	StatusPending Status = "pending"
)

// LocalIDPrefix marks recipes submitted by users rather than imported.
const LocalIDPrefix = "local_"

// Recipe is the durable recipe record.
//
// ExternalID is unique across the table. AverageRating is derived from the
// ratings table and only written by the rating upsert.
type Recipe struct {
	ID            string     `json:"id"`
	ExternalID    string     `json:"external_id" validate:"required,max=50"`
	Name          string     `json:"name" validate:"max=255"`
	Category      StringList `json:"category" validate:"max=20,dive,notblank,max=100"`
	Area          StringList `json:"area" validate:"max=20,dive,notblank,max=100"`
	Instructions  string     `json:"instructions"`
	Ingredients   StringList `json:"ingredients" validate:"max=100,dive,notblank,max=500"`
	ImageURL      string     `json:"image_url,omitempty" validate:"max=500"`
	VideoURL      string     `json:"video_url,omitempty" validate:"max=500"`
	SourceURL     string     `json:"source_url,omitempty" validate:"max=500"`
	AverageRating float64    `json:"average_rating"`
	Status        Status     `json:"status" validate:"oneof=approved pending"`
	AuthorID      string     `json:"author_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsPopulated reports whether the recipe has the content a detail view needs.
// Rows missing instructions or ingredients are repaired from the catalog.
func (r *Recipe) IsPopulated() bool {
	return strings.TrimSpace(r.Instructions) != "" && len(r.Ingredients) > 0
}

// Summary returns the compact listing form of the recipe.
func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{
		ExternalID:    r.ExternalID,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		AverageRating: r.AverageRating,
		Source:        SourceLocal,
	}
}

// Summary sources.
const (
	SourceCatalog = "catalog"
	SourceLocal   = "local"
)

// RecipeSummary is a search/listing entry. Catalog entries are not persisted
// until somebody opens their detail view.
type RecipeSummary struct {
	ExternalID    string  `json:"external_id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"image_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
	Source        string  `json:"source"`
}

// RecipeInput is an original recipe submitted by a user.
type RecipeInput struct {
	Name         string   `json:"name" validate:"required,notblank,max=255"`
	Category     []string `json:"category" validate:"max=20,dive,notblank,max=100"`
	Area         []string `json:"area" validate:"max=20,dive,notblank,max=100"`
	Instructions string   `json:"instructions" validate:"required,notblank,max=20000"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,max=100,dive,notblank,max=500"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url,max=500"`
	VideoURL     string   `json:"video_url" validate:"omitempty,url,max=500"`
}
