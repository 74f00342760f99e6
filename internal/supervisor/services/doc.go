// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package services adapts server components to suture.Service.

HTTPServerService turns the ListenAndServe/Shutdown pair of *http.Server
into a context-aware Serve. CheckpointService flushes the DuckDB WAL on an
interval and once more on shutdown.

Return values drive the supervisor:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested
*/
package services
