package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// newMigrationProvider builds a goose provider over migrations/<dir>.
func newMigrationProvider(dialect goose.Dialect, dir string, db *sql.DB) (*goose.Provider, error) {
	sub, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(dialect, db, sub)
}

func migrateUp(ctx context.Context, dialect goose.Dialect, dir string, db *sql.DB) error {
	provider, err := newMigrationProvider(dialect, dir, db)
	if err != nil {
		return fmt.Errorf("load %s migrations: %w", dir, err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dir, err)
	}
	return nil
}

// MigratePostgreSQL applies pending migrations through a database/sql view of the pool.
func MigratePostgreSQL(ctx context.Context, db *DB) error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	return migrateUp(ctx, goose.DialectPostgres, "postgres", sqlDB)
}

// MigrateSQLite applies pending migrations.
func MigrateSQLite(ctx context.Context, db *SQLiteDB) error {
	return migrateUp(ctx, goose.DialectSQLite3, "sqlite", db.DB)
}
