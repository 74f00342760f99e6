// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

// RatingRequest is the body of POST /recipes/{externalID}/ratings.
type RatingRequest struct {
	Score int `json:"score" validate:"gte=1,lte=5"`
}

// CommentRequest is the body of POST /recipes/{externalID}/comments.
type CommentRequest struct {
	Body string `json:"body" validate:"required,notblank,max=2000"`
}

// RatingResponse returns the caller's score and the recomputed average.
type RatingResponse struct {
	ExternalID    string  `json:"external_id"`
	Score         int     `json:"score"`
	AverageRating float64 `json:"average_rating"`
}

// FavoriteResponse is the outcome of a favorite toggle.
type FavoriteResponse struct {
	ExternalID    string `json:"external_id"`
	Favorited     bool   `json:"favorited"`
	FavoriteCount int    `json:"favorite_count"`
}
