// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/receitas/internal/models"
)

// TopRated returns listed recipes ordered by average rating, best first.
// Ties are broken by name.
func (db *DB) TopRated(ctx context.Context, limit int) (recipes []models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 12
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE `+listedClause+`
		ORDER BY average_rating DESC, name, external_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated recipes: %w", err)
	}
	return scanRecipes(rows)
}

// ListPending returns user submissions waiting for moderation, oldest first.
// Catalog shells are pending too but have no author and are not listed.
func (db *DB) ListPending(ctx context.Context) (recipes []models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes
		WHERE status = 'pending' AND author_id <> ''
		ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending recipes: %w", err)
	}
	return scanRecipes(rows)
}

// ApproveRecipe makes a recipe publicly listed.
func (db *DB) ApproveRecipe(ctx context.Context, id string) (err error) {
	defer db.observe("update", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withConflictRetry(ctx, "approve_recipe", func(ctx context.Context) error {
		res, err := db.conn.ExecContext(ctx,
			`UPDATE recipes SET status = 'approved', updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
		if err != nil {
			return fmt.Errorf("failed to approve recipe: %w", err)
		}
		return requireRow(res)
	})
}

// RejectRecipe deletes a recipe with its ratings, comments and favorites in
// one transaction.
func (db *DB) RejectRecipe(ctx context.Context, id string) (err error) {
	defer db.observe("delete", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withConflictRetry(ctx, "reject_recipe", func(ctx context.Context) error {
		return db.inTx(ctx, func(tx *sql.Tx) error {
			for _, table := range []string{"ratings", "comments", "favorites"} {
				if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE recipe_id = ?`, id); err != nil {
					return fmt.Errorf("failed to delete %s: %w", table, err)
				}
			}

			res, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
			if err != nil {
				return fmt.Errorf("failed to delete recipe: %w", err)
			}
			return requireRow(res)
		})
	})
}
