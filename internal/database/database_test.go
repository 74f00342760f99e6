// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"errors"
	"testing"
)

func TestNew_InitializesSchema(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	checkNoError(t, db.Ping(ctx))

	version, err := db.GetCurrentSchemaVersion(ctx)
	checkNoError(t, err)
	checkIntEqual(t, "schema version", version, len(getMigrations()))

	history, err := db.GetMigrationHistory(ctx)
	checkNoError(t, err)
	checkIntEqual(t, "history", len(history), len(getMigrations()))
	for i, m := range history {
		if m.AppliedAt.IsZero() {
			t.Errorf("migration %d has no applied_at", i)
		}
	}

	counts, err := db.GetRecordCounts(ctx)
	checkNoError(t, err)
	if *counts != (RecordCounts{}) {
		t.Errorf("fresh database counts = %+v", counts)
	}
}

func TestMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	checkNoError(t, db.runVersionedMigrations())
	checkNoError(t, db.createTables())
	checkNoError(t, db.createIndexes())

	version, err := db.GetCurrentSchemaVersion(context.Background())
	checkNoError(t, err)
	checkIntEqual(t, "schema version", version, len(getMigrations()))
}

func TestMigration_RenamesLegacyCatalogIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	legacy, _, err := db.GetOrCreateRecipe(ctx, "tmdb_52772")
	checkNoError(t, err)
	_, _, err = db.GetOrCreateRecipe(ctx, "tmdb_100")
	checkNoError(t, err)
	current, _, err := db.GetOrCreateRecipe(ctx, "themealdb_100")
	checkNoError(t, err)

	_, err = db.conn.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = 1`)
	checkNoError(t, err)
	checkNoError(t, db.runVersionedMigrations())

	renamed, err := db.GetRecipeByExternalID(ctx, "themealdb_52772")
	checkNoError(t, err)
	checkStringEqual(t, "renamed id", renamed.ID, legacy.ID)

	// The legacy row whose new id is taken is left alone.
	_, err = db.GetRecipeByExternalID(ctx, "tmdb_100")
	checkNoError(t, err)
	kept, err := db.GetRecipeByExternalID(ctx, "themealdb_100")
	checkNoError(t, err)
	checkStringEqual(t, "existing id", kept.ID, current.ID)
}

func TestIsTransactionConflict(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("TransactionContext Error: Transaction conflict: cannot update"), true},
		{errors.New("Conflict on update!"), true},
		{errors.New("Constraint Error: Duplicate key"), false},
	}
	for _, tt := range tests {
		if got := isTransactionConflict(tt.err); got != tt.want {
			t.Errorf("isTransactionConflict(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New(`Constraint Error: Duplicate key "external_id: x" violates unique constraint`), true},
		{errors.New("Constraint Error: violates primary key constraint"), true},
		{errors.New("Binder Error"), false},
	}
	for _, tt := range tests {
		if got := isUniqueConstraintError(tt.err); got != tt.want {
			t.Errorf("isUniqueConstraintError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestWithConflictRetry(t *testing.T) {
	db := &DB{maxConflictRetries: 3}
	ctx := context.Background()

	calls := 0
	err := db.withConflictRetry(ctx, "test", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("Transaction conflict")
		}
		return nil
	})
	checkNoError(t, err)
	checkIntEqual(t, "calls", calls, 3)

	calls = 0
	permanent := errors.New("Binder Error")
	err = db.withConflictRetry(ctx, "test", func(context.Context) error {
		calls++
		return permanent
	})
	checkErrorIs(t, err, permanent)
	checkIntEqual(t, "calls", calls, 1)

	calls = 0
	err = db.withConflictRetry(ctx, "test", func(context.Context) error {
		calls++
		return errors.New("Transaction conflict")
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	checkIntEqual(t, "calls", calls, 3)
}
