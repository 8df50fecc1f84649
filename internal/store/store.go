package store

import (
	"database/sql"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store provides access to all storage repositories.
type Store struct {
	db     *sql.DB
	status *StatusStore
}

// NewDB opens the DuckDB database at path. An empty path or ":memory:"
// opens an in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:     db,
		status: NewStatusStore(db),
	}
}

func (s *Store) Status() *StatusStore {
	return s.status
}

func (s *Store) Close() error {
	return s.db.Close()
}
