// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*CheckpointService)(nil)

type countingCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (c *countingCheckpointer) Checkpoint(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestCheckpointService_TicksAndFlushesOnShutdown(t *testing.T) {
	db := &countingCheckpointer{}
	svc := NewCheckpointService(db, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	// Several ticks plus the final checkpoint.
	if got := db.calls.Load(); got < 3 {
		t.Errorf("checkpoints = %d, want at least 3", got)
	}
}

func TestCheckpointService_FailuresDoNotStopService(t *testing.T) {
	db := &countingCheckpointer{err: errors.New("disk full")}
	svc := NewCheckpointService(db, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want to run until the deadline", err)
	}
	if db.calls.Load() < 2 {
		t.Errorf("checkpoints = %d, want retries after failure", db.calls.Load())
	}
}

func TestNewCheckpointService_DefaultInterval(t *testing.T) {
	svc := NewCheckpointService(&countingCheckpointer{}, 0)
	if svc.interval != DefaultCheckpointInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultCheckpointInterval)
	}
	if svc.String() != "duckdb-checkpoint" {
		t.Errorf("String() = %q", svc.String())
	}
}
