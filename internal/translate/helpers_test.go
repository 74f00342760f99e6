// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package translate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/receitas/internal/config"
)

func checkResult(t *testing.T, got Result, wantText string, wantFallback bool) {
	t.Helper()
	if got.Text != wantText {
		t.Errorf("Text: expected %q, got %q", wantText, got.Text)
	}
	if got.Fallback != wantFallback {
		t.Errorf("Fallback: expected %v, got %v", wantFallback, got.Fallback)
	}
}

func checkInt64Equal(t *testing.T, fieldName string, got, want int64) {
	t.Helper()
	if got != want {
		t.Errorf("%s: expected %d, got %d", fieldName, want, got)
	}
}

func testConfig(baseURL string) *config.TranslationConfig {
	return &config.TranslationConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		UserAgent:  "receitas-test",
		SourceLang: "pt",
		TargetLang: "en",
	}
}

// stubTranslator counts calls and answers with a fixed function.
type stubTranslator struct {
	calls atomic.Int64
	fn    func(text string) Result
}

func (s *stubTranslator) Translate(_ context.Context, text, _, _ string) Result {
	s.calls.Add(1)
	return s.fn(text)
}
