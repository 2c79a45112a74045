package store

import (
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

const driverName = "duckdb"

// NewDB opens a DuckDB database. An empty path or ":memory:" opens an in-memory database.
func NewDB(path string) (*sql.DB, error) {
	if path == ":memory:" {
		path = ""
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb at %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to duckdb at %q: %w", path, err)
	}
	return db, nil
}

// NewReadOnlyDB opens an existing database file without taking the write lock.
func NewReadOnlyDB(path string) (*sql.DB, error) {
	if path == "" || path == ":memory:" {
		return nil, fmt.Errorf("read-only mode requires a database file")
	}
	return NewDB(path + "?access_mode=READ_ONLY")
}
