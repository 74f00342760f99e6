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
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tomtom215/receitas/internal/metrics"
	"github.com/tomtom215/receitas/internal/models"
)

// MaxCommentLength is the longest accepted comment body, in runes.
const MaxCommentLength = 2000

// AddComment appends a comment to recipeID.
func (db *DB) AddComment(ctx context.Context, userID, recipeID, body string) (comment *models.Comment, err error) {
	defer db.observe("insert", "comments", time.Now(), &err)

	body = strings.TrimSpace(body)
	switch {
	case strings.TrimSpace(userID) == "":
		return nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	case body == "":
		return nil, fmt.Errorf("%w: comment body is empty", ErrInvalidInput)
	case utf8.RuneCountInString(body) > MaxCommentLength:
		return nil, fmt.Errorf("%w: comment longer than %d characters", ErrInvalidInput, MaxCommentLength)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	c := &models.Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		RecipeID:  recipeID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	err = db.inTx(ctx, func(tx *sql.Tx) error {
		if err := recipeExists(ctx, tx, recipeID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO comments (id, user_id, recipe_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.UserID, c.RecipeID, c.Body, c.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CommentsPosted.Inc()
	return c, nil
}

// ListComments returns the comments of a recipe, newest first.
func (db *DB) ListComments(ctx context.Context, recipeID string) (comments []models.Comment, err error) {
	defer db.observe("select", "comments", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, recipe_id, body, created_at
		FROM comments WHERE recipe_id = ?
		ORDER BY created_at DESC, rowid DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments = []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.RecipeID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
