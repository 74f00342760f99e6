// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package translate

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/receitas/internal/breaker"
	"github.com/tomtom215/receitas/internal/metrics"
)

// BreakerName labels the translation breaker in metrics.
const BreakerName = "translation"

var errFallback = errors.New("translation fell back to source text")

// CircuitBreakerTranslator stops calling the endpoint after repeated
// fallbacks. While the breaker is open every call returns the input with
// Fallback set.
type CircuitBreakerTranslator struct {
	next Translator
	cb   *breaker.Breaker[Result]
}

// NewCircuitBreakerTranslator wraps next with a breaker that probes again one
// minute after opening.
func NewCircuitBreakerTranslator(next Translator) *CircuitBreakerTranslator {
	s := breaker.DefaultSettings()
	s.Timeout = time.Minute
	return NewCircuitBreakerTranslatorWithSettings(next, s)
}

// NewCircuitBreakerTranslatorWithSettings wraps next with explicit settings.
func NewCircuitBreakerTranslatorWithSettings(next Translator, s breaker.Settings) *CircuitBreakerTranslator {
	return &CircuitBreakerTranslator{
		next: next,
		cb:   breaker.New[Result](BreakerName, s),
	}
}

// Translate implements Translator. Blank input bypasses the breaker.
func (t *CircuitBreakerTranslator) Translate(ctx context.Context, text, source, target string) Result {
	if isBlank(text) {
		return Result{}
	}

	res, err := t.cb.Execute(func() (Result, error) {
		r := t.next.Translate(ctx, text, source, target)
		if r.Fallback {
			return r, errFallback
		}
		return r, nil
	})
	if breaker.IsRejected(err) {
		metrics.RecordTranslation(metrics.TranslationRejected, 0)
		return Result{Text: text, Fallback: true}
	}
	return res
}

// State returns the breaker state.
func (t *CircuitBreakerTranslator) State() string {
	return t.cb.State()
}
