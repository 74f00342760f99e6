// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/translate"
)

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
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
		t.Fatalf("%s: expected %d items %q, got %d items %q", fieldName, len(want), want, len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: expected %q, got %q", fieldName, i, want[i], got[i])
		}
	}
}

// recordingTranslator tags text with the target language so tests can see
// which direction each call went.
type recordingTranslator struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingTranslator) Translate(_ context.Context, text, source, target string) translate.Result {
	if text == "" {
		return translate.Result{}
	}
	r.mu.Lock()
	r.calls = append(r.calls, source+">"+target+":"+text)
	r.mu.Unlock()
	return translate.Result{Text: target + ":" + text}
}

func testTranslationConfig() *config.TranslationConfig {
	return &config.TranslationConfig{SourceLang: "pt", TargetLang: "en"}
}

func testCatalogConfig(baseURL string) *config.CatalogConfig {
	return &config.CatalogConfig{
		BaseURL:        baseURL,
		Timeout:        2 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: time.Millisecond,
	}
}

// catalogServer records requests and answers with handler.
type catalogServer struct {
	*httptest.Server
	requests atomic.Int64
	mu       sync.Mutex
	lastURL  string
}

func newCatalogServer(t *testing.T, handler http.HandlerFunc) *catalogServer {
	t.Helper()
	cs := &catalogServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.requests.Add(1)
		cs.mu.Lock()
		cs.lastURL = r.URL.String()
		cs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *catalogServer) last() string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.lastURL
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

const teriyakiLookup = `{"meals":[{
	"idMeal":"52772",
	"strMeal":"Teriyaki Chicken Casserole",
	"strCategory":"Chicken",
	"strArea":"Japanese",
	"strInstructions":"Preheat oven.",
	"strMealThumb":"https://www.themealdb.com/images/media/meals/wvpsxx1468256321.jpg",
	"strYoutube":"https://www.youtube.com/watch?v=4aZr5hZXP_s",
	"strSource":null,
	"strIngredient1":"soy sauce","strMeasure1":"3/4 cup",
	"strIngredient2":"","strMeasure2":"",
	"strIngredient3":"water","strMeasure3":" ",
	"strIngredient4":null,"strMeasure4":null
}]}`
