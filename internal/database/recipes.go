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

	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/validation"
)

// maxLocalResults caps a local search pass.
const maxLocalResults = 500

const recipeColumns = `id, external_id, name, category, area, instructions, ingredients,
	image_url, video_url, source_url, average_rating, status, author_id, created_at, updated_at`

// listedClause restricts queries to recipes that may appear in public listings:
// approved and populated. Empty shells left by failed imports never match.
const listedClause = `status = 'approved' AND trim(instructions) <> '' AND ingredients <> '[]'`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var r models.Recipe
	var status string

	err := row.Scan(
		&r.ID, &r.ExternalID, &r.Name, &r.Category, &r.Area, &r.Instructions, &r.Ingredients,
		&r.ImageURL, &r.VideoURL, &r.SourceURL, &r.AverageRating, &status, &r.AuthorID,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan recipe: %w", err)
	}
	r.Status = models.Status(status)
	return &r, nil
}

func scanRecipes(rows *sql.Rows) ([]models.Recipe, error) {
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipeByExternalID returns the recipe with the given external identifier.
func (db *DB) GetRecipeByExternalID(ctx context.Context, externalID string) (recipe *models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.getRecipeByExternalID(ctx, externalID)
}

func (db *DB) getRecipeByExternalID(ctx context.Context, externalID string) (*models.Recipe, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE external_id = ?`, externalID)
	return scanRecipe(row)
}

// GetRecipeByID returns the recipe with the given internal id.
func (db *DB) GetRecipeByID(ctx context.Context, id string) (recipe *models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	return scanRecipe(row)
}

// GetOrCreateRecipe returns the row for externalID, inserting an empty pending
// shell when none exists. created is true only for the caller whose insert
// produced the row.
//
// Concurrent callers race on the UNIQUE constraint; losers read the winner's
// row. A conflict or constraint error from DuckDB is treated the same way.
func (db *DB) GetOrCreateRecipe(ctx context.Context, externalID string) (recipe *models.Recipe, created bool, err error) {
	defer db.observe("upsert", "recipes", time.Now(), &err)

	if verr := validation.ValidateVar(externalID, "required,max=50,recipeid"); verr != nil {
		return nil, false, fmt.Errorf("%w: external_id %q", ErrInvalidRecipe, externalID)
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	id := uuid.New().String()
	now := time.Now().UTC()

	const maxAttempts = 3
	for attempt := 0; attempt < maxAttempts; attempt++ {
		_, execErr := db.conn.ExecContext(ctx,
			`INSERT INTO recipes (id, external_id, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (external_id) DO NOTHING`,
			id, externalID, string(models.StatusPending), now, now)
		if execErr != nil && !isTransactionConflict(execErr) && !isUniqueConstraintError(execErr) {
			return nil, false, fmt.Errorf("failed to create recipe: %w", execErr)
		}

		recipe, err = db.getRecipeByExternalID(ctx, externalID)
		if err == nil {
			return recipe, recipe.ID == id, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}

		// The conflicting insert has not committed yet.
		select {
		case <-time.After(time.Millisecond * time.Duration(1<<uint(attempt))):
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}

	return nil, false, fmt.Errorf("recipe %s not visible after insert: %w", externalID, ErrNotFound)
}

// UpdateRecipeContent overwrites the content fields and status of an existing
// recipe. The average rating and authorship are never touched here.
func (db *DB) UpdateRecipeContent(ctx context.Context, r *models.Recipe) (err error) {
	defer db.observe("update", "recipes", time.Now(), &err)

	if verr := validation.ValidateStruct(r); verr != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRecipe, verr.Error())
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	lists, err := listArgs(r.Category, r.Area, r.Ingredients)
	if err != nil {
		return err
	}

	r.UpdatedAt = time.Now().UTC()
	return db.withConflictRetry(ctx, "update_recipe", func(ctx context.Context) error {
		res, err := db.conn.ExecContext(ctx,
			`UPDATE recipes SET
				name = ?, category = ?, area = ?, instructions = ?, ingredients = ?,
				image_url = ?, video_url = ?, source_url = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			r.Name, lists[0], lists[1], r.Instructions, lists[2],
			r.ImageURL, r.VideoURL, r.SourceURL, string(r.Status), r.UpdatedAt,
			r.ID)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		return requireRow(res)
	})
}

// CreateSubmittedRecipe stores an original recipe from authorID. It gets a
// local_ external id and waits in the pending state for a moderator.
func (db *DB) CreateSubmittedRecipe(ctx context.Context, authorID string, in *models.RecipeInput) (recipe *models.Recipe, err error) {
	defer db.observe("insert", "recipes", time.Now(), &err)

	if strings.TrimSpace(authorID) == "" {
		return nil, fmt.Errorf("%w: author is required", ErrInvalidRecipe)
	}
	if verr := validation.ValidateStruct(in); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecipe, verr.Error())
	}

	now := time.Now().UTC()
	r := &models.Recipe{
		ID:           uuid.New().String(),
		ExternalID:   models.LocalIDPrefix + uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Category:     models.NewStringList(in.Category),
		Area:         models.NewStringList(in.Area),
		Instructions: strings.TrimSpace(in.Instructions),
		Ingredients:  models.NewStringList(in.Ingredients),
		ImageURL:     in.ImageURL,
		VideoURL:     in.VideoURL,
		Status:       models.StatusPending,
		AuthorID:     authorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if verr := validation.ValidateStruct(r); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecipe, verr.Error())
	}

	lists, err := listArgs(r.Category, r.Area, r.Ingredients)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO recipes (`+recipeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.ExternalID, r.Name, lists[0], lists[1], r.Instructions, lists[2],
		r.ImageURL, r.VideoURL, r.SourceURL, r.AverageRating, string(r.Status), r.AuthorID,
		r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return r, nil
}

// SearchLocal returns listed recipes matching f, ordered by name. Matching is
// a case-insensitive substring test; list columns are matched against their
// JSON text.
func (db *DB) SearchLocal(ctx context.Context, f models.LocalFilter) (recipes []models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE ` + listedClause
	args := []any{}

	for _, field := range []struct {
		column string
		terms  []string
	}{
		{"name", f.Name},
		{"ingredients", f.Ingredients},
		{"area", f.Area},
		{"category", f.Category},
	} {
		clause, clauseArgs := containsAny(field.column, field.terms)
		if clause == "" {
			continue
		}
		query += " AND " + clause
		args = append(args, clauseArgs...)
	}

	query += " ORDER BY name, external_id LIMIT ?"
	args = append(args, maxLocalResults)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return scanRecipes(rows)
}

// containsAny builds "(contains(lower(col), ?) OR ...)" for the non-blank
// terms. column must be a trusted identifier.
func containsAny(column string, terms []string) (string, []any) {
	parts := make([]string, 0, len(terms))
	args := make([]any, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		parts = append(parts, "contains(lower("+column+"), ?)")
		args = append(args, term)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// ListByAuthor returns every recipe submitted by authorID, newest first,
// regardless of status.
func (db *DB) ListByAuthor(ctx context.Context, authorID string) (recipes []models.Recipe, err error) {
	defer db.observe("select", "recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE author_id = ? ORDER BY created_at DESC, name`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by author: %w", err)
	}
	return scanRecipes(rows)
}

// listArgs encodes lists as JSON text for binding. The DuckDB driver binds
// any slice as a LIST value without consulting driver.Valuer.
func listArgs(lists ...models.StringList) ([]string, error) {
	out := make([]string, len(lists))
	for i, l := range lists {
		v, err := l.Value()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRecipe, err)
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected list encoding %T", ErrInvalidRecipe, v)
		}
		out[i] = s
	}
	return out, nil
}

// requireRow maps zero affected rows to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
