// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/models"
)

// testDBSemaphore limits concurrent DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 2)

// setupTestDB creates an in-memory database that is closed when the test ends.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Logf("close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(60 * time.Second):
		t.Fatal("Timed out creating test database")
		return nil
	}
}

// seedRecipe creates an approved, populated catalog recipe.
func seedRecipe(t *testing.T, db *DB, externalID, name string, ingredients ...string) *models.Recipe {
	t.Helper()
	ctx := context.Background()

	r, _, err := db.GetOrCreateRecipe(ctx, externalID)
	checkNoError(t, err)

	if len(ingredients) == 0 {
		ingredients = []string{"1 xícara de farinha"}
	}
	r.Name = name
	r.Instructions = "Misture tudo."
	r.Ingredients = models.NewStringList(ingredients)
	r.Category = models.StringList{"Sobremesa"}
	r.Area = models.StringList{"Brasileira"}
	r.Status = models.StatusApproved
	checkNoError(t, db.UpdateRecipeContent(ctx, r))
	return r
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}

func checkStringEqual(t *testing.T, fieldName, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %q, got %q", fieldName, want, got)
	}
}

func checkIntEqual(t *testing.T, fieldName string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

func checkFloatEqual(t *testing.T, fieldName string, got, want float64) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %v, got %v", fieldName, want, got)
	}
}

func checkStrings(t *testing.T, fieldName string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %q, got %q", fieldName, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %q, got %q", fieldName, i, want[i], got[i])
		}
	}
}

func externalIDs(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i := range recipes {
		out[i] = recipes[i].ExternalID
	}
	return out
}
