// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package translate

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// AutoDetect lets the endpoint detect the source language.
const AutoDetect = "auto"

// Result is the outcome of one translation.
type Result struct {
	Text string
	// Fallback is set when Text is the untranslated input.
	Fallback bool
}

// Translated reports whether Text came back from the translation service.
func (r Result) Translated() bool {
	return !r.Fallback && r.Text != ""
}

// Translator translates text between two languages. Implementations must not
// return errors: on failure they return the input with Fallback set.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) Result
}

// TranslateAll translates texts in order, one call at a time.
func TranslateAll(ctx context.Context, t Translator, texts []string, source, target string) []Result {
	out := make([]Result, len(texts))
	for i, text := range texts {
		out[i] = t.Translate(ctx, text, source, target)
	}
	return out
}

// Identity returns every input unchanged. It is used when translation is
// switched off and as a test double.
type Identity struct{}

// Translate returns text as is.
func (Identity) Translate(_ context.Context, text, _, _ string) Result {
	if isBlank(text) {
		return Result{}
	}
	return Result{Text: text}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// ValidLanguage reports whether code is a BCP 47 tag or AutoDetect.
func ValidLanguage(code string) bool {
	if code == AutoDetect {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}
