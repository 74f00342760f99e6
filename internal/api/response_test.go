// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/receitas/internal/database"
	"github.com/tomtom215/receitas/internal/ingest"
	"github.com/tomtom215/receitas/internal/logging"
)

func TestResponseWriter_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).Success(map[string]int{"n": 1})

	checkStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}
	var data map[string]int
	env := decodeEnvelope(t, rec, &data)
	if !env.Success || data["n"] != 1 || env.Meta.RequestID != "req-1" || env.Meta.Timestamp.IsZero() {
		t.Errorf("envelope = %+v data %v", env, data)
	}
}

func TestResponseWriter_ErrorCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-2"))
	rec := httptest.NewRecorder()

	NewResponseWriter(rec, req).ValidationError("score must be between 1 and 5", map[string]string{"field": "score"})

	checkStatus(t, rec, http.StatusBadRequest)
	env := decodeEnvelope(t, rec, nil)
	if env.Error.Code != ErrCodeValidationFailed || env.Error.RequestID != "req-2" || env.Data != nil {
		t.Errorf("error envelope = %+v", env.Error)
	}
}

func TestWriteStoreError(t *testing.T) {
	tests := []struct {
		err  error
		want int
		code string
	}{
		{fmt.Errorf("%w: themealdb_1", ingest.ErrRecipeNotFound), http.StatusNotFound, ErrCodeNotFound},
		{database.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{database.ErrInvalidScore, http.StatusBadRequest, ErrCodeValidationFailed},
		{fmt.Errorf("%w: blank", database.ErrInvalidInput), http.StatusBadRequest, ErrCodeValidationFailed},
		{database.ErrInvalidRecipe, http.StatusBadRequest, ErrCodeValidationFailed},
		{errors.New("disk full"), http.StatusInternalServerError, ErrCodeDatabaseError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeStoreError(NewResponseWriter(rec, httptest.NewRequest(http.MethodGet, "/", nil)), tt.err)
			checkStatus(t, rec, tt.want)
			checkErrorCode(t, rec, tt.code)
		})
	}
}
