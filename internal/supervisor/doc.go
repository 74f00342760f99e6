// Receitas - Recipe Catalog Ingestion and Translation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/receitas

/*
Package supervisor runs the long-lived services of the recipe server under a
suture v4 supervisor tree.

The tree has two layers so a failing maintenance task never takes the HTTP
API down with it:

	RootSupervisor ("receitas")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services return nil to stop for good, an error to be restarted, and
ctx.Err() when the tree is shutting down. Supervisor events are logged
through sutureslog onto the zerolog-backed slog handler.

DuckDB itself is not supervised. It is an embedded library owned by the
database package, and the data layer only runs maintenance against it.

Example:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, 10*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
