// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/receitas/internal/metrics"
	"github.com/tomtom215/receitas/internal/models"
)

// ToggleFavorite adds recipeID to userID's favorites, or removes it when
// already present. It reports whether the recipe is a favorite afterwards.
func (db *DB) ToggleFavorite(ctx context.Context, userID, recipeID string) (favorited bool, err error) {
	defer db.observe("toggle", "favorites", time.Now(), &err)

	if strings.TrimSpace(userID) == "" {
		return false, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withConflictRetry(ctx, "toggle_favorite", func(ctx context.Context) error {
		return db.inTx(ctx, func(tx *sql.Tx) error {
			if err := recipeExists(ctx, tx, recipeID); err != nil {
				return err
			}

			res, err := tx.ExecContext(ctx,
				`DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
			if err != nil {
				return fmt.Errorf("failed to remove favorite: %w", err)
			}
			removed, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}
			if removed > 0 {
				favorited = false
				return nil
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO favorites (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
				userID, recipeID, time.Now().UTC()); err != nil {
				return fmt.Errorf("failed to add favorite: %w", err)
			}
			favorited = true
			return nil
		})
	})
	if err != nil {
		return false, err
	}

	metrics.RecordFavoriteToggle(favorited)
	return favorited, nil
}

// IsFavorite reports whether userID has favorited recipeID.
func (db *DB) IsFavorite(ctx context.Context, userID, recipeID string) (ok bool, err error) {
	defer db.observe("select", "favorites", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND recipe_id = ?`, userID, recipeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return n > 0, nil
}

// CountFavorites returns how many users favorited recipeID.
func (db *DB) CountFavorites(ctx context.Context, recipeID string) (n int, err error) {
	defer db.observe("count", "favorites", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE recipe_id = ?`, recipeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return n, nil
}

// CountUserFavorites returns the size of userID's favorites list.
func (db *DB) CountUserFavorites(ctx context.Context, userID string) (n int, err error) {
	defer db.observe("count", "favorites", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites f JOIN recipes r ON r.id = f.recipe_id WHERE f.user_id = ?`,
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count user favorites: %w", err)
	}
	return n, nil
}

// ListFavorites returns a page of userID's favorites, most recent first.
// A limit of zero or less returns every favorite.
func (db *DB) ListFavorites(ctx context.Context, userID string, limit, offset int) (favorites []models.Favorite, err error) {
	defer db.observe("select", "favorites", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT f.user_id, f.created_at, r.external_id, r.name, r.image_url, r.average_rating
		FROM favorites f JOIN recipes r ON r.id = f.recipe_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, r.name`
	args := []any{userID}
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites = []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.UserID, &f.CreatedAt, &f.Recipe.ExternalID, &f.Recipe.Name,
			&f.Recipe.ImageURL, &f.Recipe.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Recipe.Source = models.SourceLocal
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
