// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/receitas/internal/database"
)

// readinessTimeout bounds the database ping of the readiness probe.
const readinessTimeout = 2 * time.Second

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status            string                 `json:"status"`
	DatabaseConnected bool                   `json:"database_connected"`
	Uptime            float64                `json:"uptime_seconds"`
	Breakers          map[string]string      `json:"circuit_breakers,omitempty"`
	Records           *database.RecordCounts `json:"records,omitempty"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status: "alive",
		Uptime: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the database answers. Open circuit breakers
// are reported but do not fail readiness: search and detail degrade instead.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := HealthStatus{
		Status:   "ready",
		Uptime:   time.Since(h.startTime).Seconds(),
		Breakers: h.breakerStates(),
	}

	if h.db == nil || h.db.Ping(ctx) != nil {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database unavailable", status)
		return
	}
	status.DatabaseConnected = true

	if counts, err := h.db.GetRecordCounts(ctx); err == nil {
		status.Records = counts
	}
	rw.Success(status)
}
