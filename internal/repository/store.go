package repository

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/config"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/repository/sqlite"
)

// Store bundles the repositories of one database driver.
type Store struct {
	Users          user.UserRepository
	Reimbursements reimbursement.ReimbursementRepository
	Sessions       auth.SessionRepository
	Transactor     database.Transactor

	close func()
}

func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the configured database, applies pending migrations and
// returns its repositories.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.PoolConfig())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := database.MigratePostgreSQL(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return NewPostgreSQLStore(db), nil

	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := database.MigrateSQLite(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return NewSQLiteStore(db), nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func NewPostgreSQLStore(db *database.DB) *Store {
	return &Store{
		Users:          postgresql.NewUserRepository(db),
		Reimbursements: postgresql.NewReimbursementRepository(db),
		Sessions:       postgresql.NewSessionRepository(db),
		Transactor:     postgresql.NewTransactor(db),
		close:          db.Close,
	}
}

func NewSQLiteStore(db *database.SQLiteDB) *Store {
	return &Store{
		Users:          sqlite.NewUserRepository(db),
		Reimbursements: sqlite.NewReimbursementRepository(db),
		Sessions:       sqlite.NewSessionRepository(db),
		Transactor:     sqlite.NewTransactor(db),
		close:          func() { _ = db.Close() },
	}
}
