// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package breaker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/receitas/internal/metrics"
)

func testSettings() Settings {
	return Settings{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Hour,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := New[int]("breaker-test-open", testSettings())
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want boom", i, err)
		}
	}

	if got := b.State(); got != "open" {
		t.Fatalf("State() = %s, want open", got)
	}

	called := false
	_, err := b.Execute(func() (int, error) {
		called = true
		return 1, nil
	})
	if !IsRejected(err) {
		t.Errorf("err = %v, want rejection", err)
	}
	if called {
		t.Error("fn should not run while open")
	}

	if got := testutil.ToFloat64(metrics.CircuitBreakerState.WithLabelValues("breaker-test-open")); got != 2 {
		t.Errorf("state gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerRequests.WithLabelValues("breaker-test-open", "rejected")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestBreaker_StaysClosedBelowMinimum(t *testing.T) {
	b := New[string]("breaker-test-closed", testSettings())

	_, _ = b.Execute(func() (string, error) { return "", errors.New("x") })
	_, _ = b.Execute(func() (string, error) { return "", errors.New("x") })

	got, err := b.Execute(func() (string, error) { return "ok", nil })
	if err != nil || got != "ok" {
		t.Fatalf("Execute() = %q, %v", got, err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %s, want closed", b.State())
	}
	if got := testutil.ToFloat64(metrics.CircuitBreakerConsecutiveFailures.WithLabelValues("breaker-test-closed")); got != 0 {
		t.Errorf("consecutive failures = %v, want 0 after success", got)
	}
}

func TestIsRejected(t *testing.T) {
	if IsRejected(errors.New("other")) {
		t.Error("plain error should not be a rejection")
	}
	if IsRejected(nil) {
		t.Error("nil should not be a rejection")
	}
}
