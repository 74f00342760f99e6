// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/receitas/internal/auth"
	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/ingest"
	"github.com/tomtom215/receitas/internal/models"
	"github.com/tomtom215/receitas/internal/translate"
)

const testSecret = "receitas-test-secret-0123456789abcdef"

// testDBSemaphore limits concurrent DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 2)

// stubCatalog serves canned catalog data.
type stubCatalog struct {
	mu        sync.Mutex
	details   map[string]*models.CandidateRecipe
	summaries map[string][]models.RecipeSummary // "type:value"
}

func (c *stubCatalog) GetByID(_ context.Context, externalID string) (*models.CandidateRecipe, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cand, ok := c.details[externalID]
	if !ok {
		return nil, false
	}
	cp := *cand
	return &cp, true
}

func (c *stubCatalog) Summaries(_ context.Context, queryType, value string) []models.RecipeSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.RecipeSummary{}, c.summaries[queryType+":"+value]...)
}

// testEnv is a router over an in-memory database and a stub catalog.
type testEnv struct {
	db      *database.DB
	catalog *stubCatalog
	handler *Handler
	jwt     *auth.JWTManager
	server  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", Threads: 2})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close test database: %v", err)
		}
	})

	cat := &stubCatalog{
		details: map[string]*models.CandidateRecipe{
			"themealdb_52772": {
				ExternalID:   "themealdb_52772",
				Name:         "Frango Teriyaki",
				Ingredients:  []string{"3/4 xícara de molho de soja", "água"},
				Instructions: "Pré-aqueça o forno a 175°C.",
				Category:     []string{"Frango"},
				Area:         []string{"Japonesa"},
			},
		},
		summaries: map[string][]models.RecipeSummary{
			"name:frango": {
				{ExternalID: "themealdb_52772", Name: "Frango Teriyaki", Source: models.SourceCatalog},
				{ExternalID: "themealdb_52795", Name: "Frango Handi", Source: models.SourceCatalog},
			},
		},
	}

	cfg := &config.Config{
		Search: config.SearchConfig{PageSize: 9, FavoritesPageSize: 6, RankingLimit: 12},
		Security: config.SecurityConfig{
			AuthMode:          "jwt",
			JWTSecret:         testSecret,
			RateLimitDisabled: true,
		},
	}

	jm, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}

	orch := ingest.New(db, cat, translate.Identity{}, ingest.Config{UserLang: "pt", PageSize: 9})
	h := NewHandler(db, orch, cfg)
	router := NewRouter(h, auth.NewMiddleware(jm, auth.AuthModeJWT), NewChiMiddlewareFromSecurity(&cfg.Security))

	return &testEnv{db: db, catalog: cat, handler: h, jwt: jm, server: router.SetupChi()}
}

func (e *testEnv) token(t *testing.T, subject, role string) string {
	t.Helper()
	tok, err := e.jwt.GenerateToken(subject, subject, role)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

// do sends a request through the router. body is JSON-encoded unless it is
// a string, which is sent as is.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

// submitApproved stores an approved user recipe and returns it.
func (e *testEnv) submitApproved(t *testing.T, author, name string) *models.Recipe {
	t.Helper()
	r, err := e.db.CreateSubmittedRecipe(context.Background(), author, &models.RecipeInput{
		Name:         name,
		Instructions: "Misture tudo.",
		Ingredients:  []string{"1 ovo"},
	})
	if err != nil {
		t.Fatalf("CreateSubmittedRecipe() error = %v", err)
	}
	if err := e.db.ApproveRecipe(context.Background(), r.ID); err != nil {
		t.Fatalf("ApproveRecipe() error = %v", err)
	}
	return r
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) testEnvelope {
	t.Helper()
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, env.Data)
		}
	}
	return env
}

func checkStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func checkErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	env := decodeEnvelope(t, rec, nil)
	if env.Success {
		t.Fatal("success = true, want false")
	}
	if env.Error == nil || env.Error.Code != want {
		t.Fatalf("error = %+v, want code %s", env.Error, want)
	}
}
