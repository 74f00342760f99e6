// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

package services

import (
	"context"
	"time"

	"github.com/tomtom215/receitas/internal/logging"
)

// DefaultCheckpointInterval is used when NewCheckpointService gets zero.
const DefaultCheckpointInterval = 10 * time.Minute

// finalCheckpointTimeout bounds the checkpoint taken on shutdown.
const finalCheckpointTimeout = 5 * time.Second

// Checkpointer flushes the write-ahead log into the database file.
// Satisfied by *database.DB.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the database on an interval and once more
// when the tree shuts down. A failed checkpoint is logged and retried on the
// next tick; it never restarts the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
}

// NewCheckpointService creates the service.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	if interval <= 0 {
		interval = DefaultCheckpointInterval
	}
	return &CheckpointService{db: db, interval: interval}
}

// Serve implements suture.Service.
func (c *CheckpointService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.checkpoint(ctx)
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), finalCheckpointTimeout)
			c.checkpoint(finalCtx)
			cancel()
			return ctx.Err()
		}
	}
}

func (c *CheckpointService) checkpoint(ctx context.Context) {
	start := time.Now()
	if err := c.db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Database checkpoint failed")
		return
	}
	logging.Debug().Dur("duration", time.Since(start)).Msg("Database checkpoint complete")
}

// String names the service in supervisor events.
func (c *CheckpointService) String() string {
	return "duckdb-checkpoint"
}
