// Package store implements the data access layer for terralift.
//
// The agent persists one thing: the last observed status of each stack and
// workspace pair, recorded after each operation as diagnostic metadata. Live
// operations always re-probe and never trust the cache. Storage is DuckDB,
// queries are built with squirrel.
//
// # Schema
//
// Tables created by local migrations (internal/store/migrations):
//
//	┌──────────────┬──────────────────────────────────────────────────┐
//	│ Table        │ Purpose                                          │
//	├──────────────┼──────────────────────────────────────────────────┤
//	│ stack_status │ Cached plan outcome and outputs per stack and    │
//	│              │ workspace                                        │
//	└──────────────┴──────────────────────────────────────────────────┘
//
//	stack_status (
//	    stack_name VARCHAR NOT NULL,
//	    workspace  VARCHAR NOT NULL,
//	    status     VARCHAR NOT NULL,
//	    outputs    VARCHAR,
//	    cached_at  TIMESTAMP NOT NULL,
//	    PRIMARY KEY (stack_name, workspace)
//	)
//
// # StatusStore
//
// Methods:
//   - Get(ctx, stack, workspace) → *models.CachedStatus, NotFoundError when
//     no row exists
//   - Save(ctx, status) → error (UPSERT on the composite key)
//   - Delete(ctx, stack, workspace) → error, used for cache invalidation
//     after passthrough commands and destroys
//
// The database path comes from the agent data folder; an empty path opens an
// in-memory database, which the tests rely on.
package store
