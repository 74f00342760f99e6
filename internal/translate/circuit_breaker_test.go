// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package translate

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/receitas/internal/breaker"
)

func tripFast() breaker.Settings {
	return breaker.Settings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  2,
		FailureRatio: 0.5,
	}
}

func TestCircuitBreakerTranslator_OpenFallsBackWithoutCall(t *testing.T) {
	stub := &stubTranslator{fn: func(text string) Result {
		return Result{Text: text, Fallback: true}
	}}
	tr := NewCircuitBreakerTranslatorWithSettings(stub, tripFast())
	ctx := context.Background()

	checkResult(t, tr.Translate(ctx, "Beef", "en", "pt"), "Beef", true)
	checkResult(t, tr.Translate(ctx, "Pork", "en", "pt"), "Pork", true)
	if tr.State() != "open" {
		t.Fatalf("State() = %s, want open", tr.State())
	}

	checkResult(t, tr.Translate(ctx, "Lamb", "en", "pt"), "Lamb", true)
	checkInt64Equal(t, "calls", stub.calls.Load(), 2)
}

func TestCircuitBreakerTranslator_PassesSuccess(t *testing.T) {
	stub := &stubTranslator{fn: func(text string) Result {
		return Result{Text: "pt:" + text}
	}}
	tr := NewCircuitBreakerTranslatorWithSettings(stub, tripFast())

	for i := 0; i < 5; i++ {
		checkResult(t, tr.Translate(context.Background(), "Egg", "en", "pt"), "pt:Egg", false)
	}
	if tr.State() != "closed" {
		t.Errorf("State() = %s, want closed", tr.State())
	}
}

func TestCircuitBreakerTranslator_BlankBypassesBreaker(t *testing.T) {
	stub := &stubTranslator{fn: func(text string) Result { return Result{Text: text, Fallback: true} }}
	tr := NewCircuitBreakerTranslatorWithSettings(stub, tripFast())

	for i := 0; i < 5; i++ {
		checkResult(t, tr.Translate(context.Background(), "", "en", "pt"), "", false)
	}
	checkInt64Equal(t, "calls", stub.calls.Load(), 0)
	if tr.State() != "closed" {
		t.Errorf("State() = %s, want closed", tr.State())
	}
}
