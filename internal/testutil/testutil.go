package testutil

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
)

// OpenInMemoryDB opens a private in-memory SQLite database with the schema applied.
// The database is closed through t.Cleanup.
func OpenInMemoryDB(t *testing.T) *database.SQLiteDB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.MigrateSQLite(context.Background(), db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
