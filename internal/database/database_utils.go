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
	"time"

	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/metrics"
)

// RecordCounts is the row count of each table.
type RecordCounts struct {
	Recipes   int64 `json:"recipes"`
	Pending   int64 `json:"pending"`
	Ratings   int64 `json:"ratings"`
	Comments  int64 `json:"comments"`
	Favorites int64 `json:"favorites"`
}

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// observe records a finished query. Use with a named error return:
//
//	defer db.observe("select", "recipes", time.Now(), &err)
func (db *DB) observe(operation, table string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

// inTx runs fn in a transaction, committing when it returns nil.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logging.Warn().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Checkpoint forces a WAL checkpoint
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetRecordCounts returns the row counts reported by the readiness check.
func (db *DB) GetRecordCounts(ctx context.Context) (*RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var c RecordCounts
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM recipes),
		(SELECT COUNT(*) FROM recipes WHERE status = 'pending'),
		(SELECT COUNT(*) FROM ratings),
		(SELECT COUNT(*) FROM comments),
		(SELECT COUNT(*) FROM favorites)`).Scan(&c.Recipes, &c.Pending, &c.Ratings, &c.Comments, &c.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	return &c, nil
}
