package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/terralift/terralift/internal/models"
	srvErrors "github.com/terralift/terralift/pkg/errors"
)

const statusTable = "stack_status"

// StatusStore persists the last observed status per (stack, workspace).
// It is diagnostic metadata only: live operations always re-probe.
type StatusStore struct {
	db *sql.DB
}

func NewStatusStore(db *sql.DB) *StatusStore {
	return &StatusStore{db: db}
}

// Get retrieves a cached status record.
func (s *StatusStore) Get(ctx context.Context, stackName, workspace string) (*models.CachedStatus, error) {
	query, args, err := sq.Select("stack_name", "workspace", "status", "outputs", "cached_at").
		From(statusTable).
		Where(sq.Eq{"stack_name": stackName, "workspace": workspace}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var cached models.CachedStatus
	var status string
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&cached.StackName, &cached.Workspace, &status, &cached.Outputs, &cached.CachedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewStatusNotFoundError(stackName, workspace)
	}
	if err != nil {
		return nil, err
	}

	cached.Status, err = models.ParseStackStatus(status)
	if err != nil {
		return nil, err
	}
	return &cached, nil
}

// Save upserts the status record for a stack/workspace pair.
func (s *StatusStore) Save(ctx context.Context, cached *models.CachedStatus) error {
	cachedAt := cached.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now().UTC()
	}

	// Outputs is bound as a string: the driver maps []byte to a BLOB, which
	// a VARCHAR column stores escape-mangled.
	query, args, err := sq.Insert(statusTable).
		Columns("stack_name", "workspace", "status", "outputs", "cached_at").
		Values(cached.StackName, cached.Workspace, string(cached.Status), string(cached.Outputs), cachedAt).
		Suffix(`ON CONFLICT (stack_name, workspace) DO UPDATE SET
			status = EXCLUDED.status,
			outputs = EXCLUDED.outputs,
			cached_at = EXCLUDED.cached_at`).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes the status record. Removing a record that does not exist
// is not an error.
func (s *StatusStore) Delete(ctx context.Context, stackName, workspace string) error {
	query, args, err := sq.Delete(statusTable).
		Where(sq.Eq{"stack_name": stackName, "workspace": workspace}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}
