package database

import (
	"context"
	"database/sql"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteDB wraps a database/sql handle opened with the pure-Go sqlite driver.
type SQLiteDB struct {
	*sql.DB
}

// NewSQLiteDB opens the database at path. ":memory:" gives a private
// in-memory database, which is what the tests use.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers anyway, and an in-memory database only
	// exists on the connection that created it.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &SQLiteDB{DB: conn}, nil
}

// SQLQuerier is satisfied by both *sql.DB and *sql.Tx.
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
