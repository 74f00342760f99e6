// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package translate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/receitas/internal/config"
	"github.com/tomtom215/receitas/internal/logging"
	"github.com/tomtom215/receitas/internal/metrics"
)

// resultSelector matches the element holding the translated text.
const resultSelector = "div.result-container"

var (
	errNoResult    = errors.New("response has no result container")
	errEmptyResult = errors.New("result container is empty")
	errBadLanguage = errors.New("invalid language code")
)

// Client scrapes a web translation endpoint with colly. Every request runs
// on a clone of one base collector, so HTTP connections are pooled across
// calls while callbacks stay per request.
type Client struct {
	baseURL string
	base    *colly.Collector
	logger  zerolog.Logger
}

// NewClient creates a translation client from configuration.
func NewClient(cfg *config.TranslationConfig) *Client {
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	base.SetRequestTimeout(cfg.Timeout)

	return &Client{
		baseURL: cfg.BaseURL,
		base:    base,
		logger:  logging.WithComponent("translate"),
	}
}

// Translate implements Translator.
func (c *Client) Translate(ctx context.Context, text, source, target string) Result {
	if isBlank(text) {
		metrics.RecordTranslation(metrics.TranslationSkipped, 0)
		return Result{}
	}

	if !ValidLanguage(source) || !ValidLanguage(target) {
		metrics.RecordTranslation(metrics.TranslationRejected, 0)
		c.logFallback(ctx, source, target, fmt.Errorf("%w: %q -> %q", errBadLanguage, source, target))
		return Result{Text: text, Fallback: true}
	}

	start := time.Now()
	translated, err := c.fetch(ctx, text, source, target)
	if err != nil {
		metrics.RecordTranslation(metrics.TranslationFallback, time.Since(start))
		c.logFallback(ctx, source, target, err)
		return Result{Text: text, Fallback: true}
	}

	metrics.RecordTranslation(metrics.TranslationTranslated, time.Since(start))
	return Result{Text: translated}
}

func (c *Client) fetch(ctx context.Context, text, source, target string) (string, error) {
	collector := c.base.Clone()
	collector.Context = ctx

	var (
		found      bool
		translated string
	)
	collector.OnHTML(resultSelector, func(e *colly.HTMLElement) {
		if found {
			return
		}
		found = true
		translated = strings.TrimSpace(e.Text)
	})

	if err := collector.Visit(c.requestURL(text, source, target)); err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}
	if !found {
		return "", errNoResult
	}
	if translated == "" {
		return "", errEmptyResult
	}
	return translated, nil
}

func (c *Client) requestURL(text, source, target string) string {
	params := url.Values{}
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("q", text)
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) logFallback(ctx context.Context, source, target string, err error) {
	c.logger.Warn().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("source", source).
		Str("target", target).
		Err(err).
		Msg("Translation failed, using original text")
}
