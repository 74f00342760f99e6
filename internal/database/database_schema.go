// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements.
// List columns hold JSON arrays as TEXT so an empty list is '[]', never NULL.
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			external_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '[]',
			area TEXT NOT NULL DEFAULT '[]',
			instructions TEXT NOT NULL DEFAULT '',
			ingredients TEXT NOT NULL DEFAULT '[]',
			image_url TEXT NOT NULL DEFAULT '',
			video_url TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			average_rating DOUBLE NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			author_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS ratings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			recipe_id TEXT NOT NULL,
			score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE (user_id, recipe_id)
		);`,

		`CREATE TABLE IF NOT EXISTS comments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			recipe_id TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS favorites (
			user_id TEXT NOT NULL,
			recipe_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, recipe_id)
		);`,
	}
}

// createIndexes creates secondary indexes. Columns updated in place (status,
// average_rating) stay unindexed; DuckDB rewrites indexed updates as delete
// plus insert.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements
func getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_ratings_recipe ON ratings(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_comments_recipe ON comments(recipe_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_favorites_recipe ON favorites(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id);`,
	}
}
