// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/tomtom215/receitas/internal/models"
)

func catalogSummary(id string) models.RecipeSummary {
	return models.RecipeSummary{ExternalID: id, Name: id, Source: models.SourceCatalog}
}

func TestSearch_CatalogQueryOrder(t *testing.T) {
	store := newFakeStore()
	cat := newFakeCatalog()
	o := newTestOrchestrator(store, cat)

	_, err := o.Search(context.Background(), Query{
		Name:        "frango",
		Ingredients: "alho, ,cebola",
		Category:    "Sobremesa",
		Area:        "Italiana",
	})
	checkNoError(t, err)
	checkStrings(t, "calls", cat.callLog(), []string{
		"name:frango",
		"ingredient:alho",
		"ingredient:cebola",
		"category:Sobremesa",
		"area:Italiana",
	})
}

func TestSearch_ConcatenatesWithoutDedup(t *testing.T) {
	store := newFakeStore()
	store.local = []models.Recipe{
		{ExternalID: "themealdb_1", Name: "Frango Assado"},
		{ExternalID: "local_x", Name: "Frango Caipira"},
	}
	cat := newFakeCatalog()
	cat.summaries["name:frango"] = []models.RecipeSummary{catalogSummary("themealdb_1"), catalogSummary("themealdb_2")}
	cat.summaries["ingredient:frango"] = []models.RecipeSummary{catalogSummary("themealdb_1")}
	o := newTestOrchestrator(store, cat)

	page, err := o.Search(context.Background(), Query{Name: "frango", Ingredients: "frango"})
	checkNoError(t, err)
	checkStrings(t, "items", summaryIDs(page.Items),
		[]string{"themealdb_1", "themealdb_2", "themealdb_1", "themealdb_1", "local_x"})
	checkIntEqual(t, "total", page.Total, 5)
	checkStringEqual(t, "local source", page.Items[4].Source, models.SourceLocal)
	checkStringEqual(t, "catalog source", page.Items[0].Source, models.SourceCatalog)
}

func TestSearch_LocalFilterAlternatives(t *testing.T) {
	store := newFakeStore()
	o := New(store, newFakeCatalog(), dictTranslator{
		"chicken": "frango",
		"garlic":  "alho",
		"dessert": "Sobremesa",
	}, Config{UserLang: "pt"})

	_, err := o.Search(context.Background(), Query{
		Name:        "chicken",
		Ingredients: "garlic, cebola",
		Category:    "dessert",
		Area:        "Brasileira",
	})
	checkNoError(t, err)

	f := store.lastFilter
	checkStrings(t, "name", f.Name, []string{"chicken", "frango"})
	checkStrings(t, "ingredients", f.Ingredients, []string{"garlic", "alho", "cebola"})
	checkStrings(t, "category", f.Category, []string{"dessert", "Sobremesa"})
	checkStrings(t, "area", f.Area, []string{"Brasileira"})
}

func TestSearch_EmptyQueryListsLocal(t *testing.T) {
	store := newFakeStore()
	store.local = []models.Recipe{{ExternalID: "local_a", Name: "A"}, {ExternalID: "local_b", Name: "B"}}
	cat := newFakeCatalog()
	o := newTestOrchestrator(store, cat)

	if !(Query{Ingredients: " , "}).IsEmpty() {
		t.Error("blank ingredient list should count as empty")
	}

	page, err := o.Search(context.Background(), Query{})
	checkNoError(t, err)
	checkIntEqual(t, "catalog calls", len(cat.callLog()), 0)
	if !store.lastFilter.IsEmpty() {
		t.Errorf("expected empty local filter, got %+v", store.lastFilter)
	}
	checkStrings(t, "items", summaryIDs(page.Items), []string{"local_a", "local_b"})
}

func TestSearch_LocalFailureDegrades(t *testing.T) {
	store := newFakeStore()
	store.searchErr = errors.New("database is locked")
	cat := newFakeCatalog()
	cat.summaries["area:Japonesa"] = []models.RecipeSummary{catalogSummary("themealdb_7")}
	o := newTestOrchestrator(store, cat)

	page, err := o.Search(context.Background(), Query{Area: "Japonesa"})
	checkNoError(t, err)
	checkStrings(t, "items", summaryIDs(page.Items), []string{"themealdb_7"})
}

func TestSearch_Pagination(t *testing.T) {
	cat := newFakeCatalog()
	for i := 1; i <= 20; i++ {
		cat.summaries["name:bolo"] = append(cat.summaries["name:bolo"], catalogSummary(fmt.Sprintf("themealdb_%d", i)))
	}
	o := newTestOrchestrator(newFakeStore(), cat)

	tests := []struct {
		page      int
		wantPage  int
		wantCount int
		wantFirst string
	}{
		{1, 1, 9, "themealdb_1"},
		{2, 2, 9, "themealdb_10"},
		{3, 3, 2, "themealdb_19"},
		{99, 3, 2, "themealdb_19"},
		{0, 1, 9, "themealdb_1"},
		{-4, 1, 9, "themealdb_1"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			page, err := o.Search(context.Background(), Query{Name: "bolo", Page: tt.page})
			checkNoError(t, err)
			checkIntEqual(t, "page", page.Page, tt.wantPage)
			checkIntEqual(t, "count", len(page.Items), tt.wantCount)
			checkIntEqual(t, "total pages", page.TotalPages, 3)
			checkIntEqual(t, "page size", page.PageSize, 9)
			checkStringEqual(t, "first", page.Items[0].ExternalID, tt.wantFirst)
		})
	}
}

func TestSearch_NoResults(t *testing.T) {
	o := newTestOrchestrator(newFakeStore(), newFakeCatalog())

	page, err := o.Search(context.Background(), Query{Name: "nada", Page: 5})
	checkNoError(t, err)
	checkIntEqual(t, "page", page.Page, 1)
	checkIntEqual(t, "total pages", page.TotalPages, 1)
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %v", page.Items)
	}
}
