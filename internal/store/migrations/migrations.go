// Package migrations creates and upgrades the agent's DuckDB schema.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

// statements run in order on every start; each must be idempotent.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS stack_status (
		stack_name VARCHAR NOT NULL,
		workspace  VARCHAR NOT NULL,
		status     VARCHAR NOT NULL,
		outputs    VARCHAR,
		cached_at  TIMESTAMP NOT NULL,
		PRIMARY KEY (stack_name, workspace)
	)`,
}

// Run applies all schema migrations.
func Run(ctx context.Context, db *sql.DB) error {
	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("running migration %d: %w", i, err)
		}
	}
	return nil
}
