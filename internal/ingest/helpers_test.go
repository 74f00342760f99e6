// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/translate"
)

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

func summaryIDs(items []models.RecipeSummary) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].ExternalID
	}
	return out
}

// fakeStore is an in-memory Store keyed by external id.
type fakeStore struct {
	mu         sync.Mutex
	recipes    map[string]*models.Recipe
	nextID     int
	updates    int
	local      []models.Recipe
	lastFilter models.LocalFilter
	createErr  error
	searchErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{recipes: map[string]*models.Recipe{}}
}

func (s *fakeStore) GetOrCreateRecipe(_ context.Context, externalID string) (*models.Recipe, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, false, s.createErr
	}
	if strings.ContainsAny(externalID, "./ ") {
		return nil, false, database.ErrInvalidRecipe
	}
	if r, ok := s.recipes[externalID]; ok {
		c := *r
		return &c, false, nil
	}
	s.nextID++
	r := &models.Recipe{
		ID:         fmt.Sprintf("id-%d", s.nextID),
		ExternalID: externalID,
		Status:     models.StatusPending,
	}
	s.recipes[externalID] = r
	c := *r
	return &c, true, nil
}

func (s *fakeStore) GetRecipeByExternalID(_ context.Context, externalID string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[externalID]
	if !ok {
		return nil, database.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (s *fakeStore) UpdateRecipeContent(_ context.Context, r *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[r.ExternalID]; !ok {
		return database.ErrNotFound
	}
	s.updates++
	c := *r
	s.recipes[r.ExternalID] = &c
	return nil
}

func (s *fakeStore) SearchLocal(_ context.Context, f models.LocalFilter) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFilter = f
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return append([]models.Recipe{}, s.local...), nil
}

func (s *fakeStore) get(externalID string) (*models.Recipe, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipes[externalID]
	return r, ok
}

// fakeCatalog serves canned details and summaries and records every call.
type fakeCatalog struct {
	mu        sync.Mutex
	details   map[string]*models.CandidateRecipe
	summaries map[string][]models.RecipeSummary // "type:value"
	calls     []string
	delay     time.Duration
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		details:   map[string]*models.CandidateRecipe{},
		summaries: map[string][]models.RecipeSummary{},
	}
}

func (c *fakeCatalog) GetByID(_ context.Context, externalID string) (*models.CandidateRecipe, bool) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "lookup:"+externalID)
	cand, ok := c.details[externalID]
	if !ok {
		return nil, false
	}
	cp := *cand
	return &cp, true
}

func (c *fakeCatalog) Summaries(_ context.Context, queryType, value string) []models.RecipeSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := queryType + ":" + value
	c.calls = append(c.calls, key)
	return append([]models.RecipeSummary{}, c.summaries[key]...)
}

func (c *fakeCatalog) callLog() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.calls...)
}

// dictTranslator translates the words it knows and falls back otherwise.
type dictTranslator map[string]string

func (d dictTranslator) Translate(_ context.Context, text, _, _ string) translate.Result {
	if text == "" {
		return translate.Result{}
	}
	if out, ok := d[strings.ToLower(text)]; ok {
		return translate.Result{Text: out}
	}
	return translate.Result{Text: text, Fallback: true}
}

func teriyakiCandidate() *models.CandidateRecipe {
	return &models.CandidateRecipe{
		ExternalID:   "themealdb_52772",
		Name:         "Frango Teriyaki",
		ImageURL:     "https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
		Ingredients:  []string{"3/4 xícara de molho de soja", "água"},
		Instructions: "Pré-aqueça o forno a 175°C.",
		Category:     []string{"Frango"},
		Area:         []string{"Japonesa"},
		VideoURL:     "https://www.youtube.com/watch?v=4aZr5hZXP_s",
	}
}

func newTestOrchestrator(store Store, cat Catalog) *Orchestrator {
	return New(store, cat, dictTranslator{}, Config{UserLang: "pt", PageSize: 9})
}
