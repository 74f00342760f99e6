// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestAPIClient_RetriesThrottling(t *testing.T) {
	var n atomic.Int64
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) < 3 {
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		jsonHandler(`{"meals":[{"idMeal":"1","strMeal":"Soup"}]}`)(w, r)
	})

	c := NewAPIClient(testCatalogConfig(srv.URL))
	meals, err := c.SearchByName(context.Background(), "soup")
	checkNoError(t, err)
	checkIntEqual(t, "meals", len(meals), 1)
	checkIntEqual(t, "requests", int(srv.requests.Load()), 3)
}

func TestAPIClient_RetriesExhausted(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	c := NewAPIClient(testCatalogConfig(srv.URL))
	_, err := c.Filter(context.Background(), url.Values{"a": {"Canadian"}})
	checkError(t, err)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected StatusError 503, got %v", err)
	}
	checkIntEqual(t, "requests", int(srv.requests.Load()), 3)
}

func TestAPIClient_HonoursRetryAfter(t *testing.T) {
	var n atomic.Int64
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if n.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		jsonHandler(`{"meals":null}`)(w, r)
	})

	c := NewAPIClient(testCatalogConfig(srv.URL))
	start := time.Now()
	meals, err := c.Filter(context.Background(), url.Values{"c": {"Seafood"}})
	checkNoError(t, err)
	checkIntEqual(t, "meals", len(meals), 0)
	if elapsed := time.Since(start); elapsed < 900*time.Millisecond {
		t.Errorf("Retry-After not honoured, retried after %v", elapsed)
	}
}

func TestAPIClient_PermanentFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }},
		{"server error", func(w http.ResponseWriter, r *http.Request) { http.Error(w, "boom", http.StatusInternalServerError) }},
		{"bad json", jsonHandler(`{"meals":[`)},
		{"html", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html></html>")) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newCatalogServer(t, tt.handler)
			c := NewAPIClient(testCatalogConfig(srv.URL))
			_, err := c.Filter(context.Background(), url.Values{"i": {"chicken"}})
			checkError(t, err)
			checkIntEqual(t, "requests", int(srv.requests.Load()), 1)
		})
	}
}

func TestAPIClient_Lookup(t *testing.T) {
	srv := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("i") == "52772" {
			jsonHandler(teriyakiLookup)(w, r)
			return
		}
		jsonHandler(`{"meals":null}`)(w, r)
	})
	c := NewAPIClient(testCatalogConfig(srv.URL))

	m, err := c.Lookup(context.Background(), "52772")
	checkNoError(t, err)
	checkStringEqual(t, "name", m.Name, "Teriyaki Chicken Casserole")
	if !strings.HasSuffix(srv.last(), "/lookup.php?i=52772") {
		t.Errorf("unexpected request URL %s", srv.last())
	}

	_, err = c.Lookup(context.Background(), "1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAPIClient_BaseURLWithoutSlash(t *testing.T) {
	srv := newCatalogServer(t, jsonHandler(`{"meals":null}`))
	c := NewAPIClient(testCatalogConfig(srv.URL + "/api/json/v1/1"))

	_, err := c.SearchByName(context.Background(), "x")
	checkNoError(t, err)
	if !strings.HasPrefix(srv.last(), "/api/json/v1/1/search.php?") {
		t.Errorf("unexpected request URL %s", srv.last())
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := map[string]int{
		"":                              0,
		"3":                             3,
		"-1":                            0,
		"600":                           10,
		"Wed, 21 Oct 2015 07:28:00 GMT": 0,
	}
	for in, want := range tests {
		if got := retryAfterSeconds(in); got != want {
			t.Errorf("retryAfterSeconds(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestFilterQueryType(t *testing.T) {
	tests := []struct {
		params url.Values
		want   string
	}{
		{url.Values{"i": {"chicken"}}, QueryIngredient},
		{url.Values{"c": {"Seafood"}}, QueryCategory},
		{url.Values{"a": {"Canadian"}}, QueryArea},
		{url.Values{"i": {"chicken"}, "a": {"Canadian"}}, QueryFilter},
		{url.Values{}, QueryFilter},
	}
	for _, tt := range tests {
		checkStringEqual(t, tt.params.Encode(), filterQueryType(tt.params), tt.want)
	}
}
