package database

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSources(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	tests := []struct {
		dialect goose.Dialect
		dir     string
	}{
		{goose.DialectPostgres, "postgres"},
		{goose.DialectSQLite3, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			provider, err := newMigrationProvider(tt.dialect, tt.dir, db.DB)
			require.NoError(t, err)

			sources := provider.ListSources()
			require.NotEmpty(t, sources)
			assert.Equal(t, int64(1), sources[0].Version)
			for i := 1; i < len(sources); i++ {
				assert.Less(t, sources[i-1].Version, sources[i].Version)
			}
		})
	}
}

func TestMigrateSQLite_Idempotent(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, MigrateSQLite(ctx, db))
	require.NoError(t, MigrateSQLite(ctx, db))

	provider, err := newMigrationProvider(goose.DialectSQLite3, "sqlite", db.DB)
	require.NoError(t, err)
	version, err := provider.GetDBVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	pending, err := provider.HasPending(ctx)
	require.NoError(t, err)
	assert.False(t, pending)

	for _, table := range []string{"users", "reimbursements", "sessions"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrateSQLite_DownDropsTables(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, MigrateSQLite(ctx, db))

	provider, err := newMigrationProvider(goose.DialectSQLite3, "sqlite", db.DB)
	require.NoError(t, err)
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'reimbursements', 'sessions')`).Scan(&count))
	assert.Zero(t, count)
}

func TestNewSQLiteDB_ForeignKeysEnabled(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var enabled int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled))
	assert.Equal(t, 1, enabled)
}
