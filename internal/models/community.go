// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package models

import "time"

// Rating score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a user's score for a recipe. One row per (user, recipe).
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is an append-only remark on a recipe.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	RecipeID  string    `json:"recipe_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite is a (user, recipe) membership.
type Favorite struct {
	UserID    string        `json:"user_id"`
	Recipe    RecipeSummary `json:"recipe"`
	CreatedAt time.Time     `json:"created_at"`
}

// RecipeDetail is everything the detail view shows for one recipe.
type RecipeDetail struct {
	Recipe        *Recipe   `json:"recipe"`
	Ratings       []Rating  `json:"ratings"`
	Comments      []Comment `json:"comments"`
	FavoriteCount int       `json:"favorite_count"`
	IsFavorite    bool      `json:"is_favorite"`
	UserScore     int       `json:"user_score,omitempty"`
}

// Profile lists a user's favorites and submissions.
type Profile struct {
	UserID    string          `json:"user_id"`
	Favorites []Favorite      `json:"favorites"`
	Submitted []RecipeSummary `json:"submitted"`
}
