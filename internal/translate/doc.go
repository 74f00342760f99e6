// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package translate turns short pieces of text from one language into another
through a scraped web translation endpoint.

Translation never fails from the caller's point of view. Blank input returns
an empty result without a network call, and every transport, status or
parsing problem is logged and answered with the original text and
Result.Fallback set. There is no retry and no caching: a failed call costs one
request and degrades immediately.

Components:

  - Translator: the interface the catalog client and the orchestrator depend on
  - Client: colly-based implementation that reads div.result-container from
    the endpoint's HTML
  - CircuitBreakerTranslator: stops calling a failing endpoint and falls back
    without a network round trip while the breaker is open
  - TranslateAll: ordered, sequential translation of a list

Usage:

	var t translate.Translator = translate.NewClient(&cfg.Translation)
	if cfg.Translation.CircuitBreaker {
	    t = translate.NewCircuitBreakerTranslator(t)
	}
	res := t.Translate(ctx, "Chicken", "en", "pt")
	if res.Fallback {
	    // res.Text is still usable, it is just untranslated
	}
*/
package translate
