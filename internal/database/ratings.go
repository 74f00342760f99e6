// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/receitas/internal/metrics"
	"github.com/tomtom215/receitas/internal/models"
)

// UpsertRating stores userID's score for recipeID, replacing any previous
// score, and returns the recipe's new average. The upsert and the average
// recompute commit together.
func (db *DB) UpsertRating(ctx context.Context, userID, recipeID string, score int) (average float64, err error) {
	defer db.observe("upsert", "ratings", time.Now(), &err)

	if score < models.MinScore || score > models.MaxScore {
		return 0, ErrInvalidScore
	}
	if strings.TrimSpace(userID) == "" {
		return 0, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withConflictRetry(ctx, "upsert_rating", func(ctx context.Context) error {
		return db.inTx(ctx, func(tx *sql.Tx) error {
			if err := recipeExists(ctx, tx, recipeID); err != nil {
				return err
			}

			now := time.Now().UTC()
			_, err := tx.ExecContext(ctx,
				`INSERT INTO ratings (id, user_id, recipe_id, score, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT (user_id, recipe_id) DO UPDATE SET
					score = EXCLUDED.score,
					updated_at = EXCLUDED.updated_at`,
				uuid.New().String(), userID, recipeID, score, now, now)
			if err != nil {
				return fmt.Errorf("failed to upsert rating: %w", err)
			}

			average, err = recomputeAverage(ctx, tx, recipeID)
			return err
		})
	})
	if err != nil {
		return 0, err
	}

	metrics.RatingsSubmitted.Inc()
	return average, nil
}

// recomputeAverage writes AVG(score), rounded to two places, to the recipe.
// A recipe without ratings averages 0.
func recomputeAverage(ctx context.Context, tx *sql.Tx, recipeID string) (float64, error) {
	var average float64
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(ROUND(AVG(score), 2), 0) FROM ratings WHERE recipe_id = ?`, recipeID).Scan(&average)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE recipes SET average_rating = ? WHERE id = ?`, average, recipeID); err != nil {
		return 0, fmt.Errorf("failed to store average rating: %w", err)
	}
	return average, nil
}

// recipeExists returns ErrNotFound when no recipe has the given id.
func recipeExists(ctx context.Context, tx *sql.Tx, recipeID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, recipeID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check recipe: %w", err)
	}
	return nil
}

// ListRatings returns the ratings of a recipe, most recently changed first.
func (db *DB) ListRatings(ctx context.Context, recipeID string) (ratings []models.Rating, err error) {
	defer db.observe("select", "ratings", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, score, created_at, updated_at
		FROM ratings WHERE recipe_id = ?
		ORDER BY updated_at DESC, id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings = []models.Rating{}
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.RecipeID, &r.Score, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// GetUserScore returns userID's score for recipeID, or 0 when unrated.
func (db *DB) GetUserScore(ctx context.Context, userID, recipeID string) (score int, err error) {
	defer db.observe("select", "ratings", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		`SELECT score FROM ratings WHERE user_id = ? AND recipe_id = ?`, userID, recipeID).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get user score: %w", err)
	}
	return score, nil
}
