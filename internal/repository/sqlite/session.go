package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
)

type sessionRepositoryImpl struct {
	db *database.SQLiteDB
}

// NewSessionRepository creates a new instance of auth.SessionRepository.
func NewSessionRepository(db *database.SQLiteDB) auth.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (s *sessionRepositoryImpl) Create(ctx context.Context, session auth.Session) error {
	q := GetQuerier(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, user_agent, ip_address, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.UserID, session.ExpiresAt.UTC(), session.UserAgent, session.IPAddress, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (auth.Session, error) {
	q := GetQuerier(ctx, s.db)

	var session auth.Session
	var userAgent, ipAddress sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, revoked_at, user_agent, ip_address, created_at
		 FROM sessions
		 WHERE id = ?`,
		id,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.RevokedAt,
		&userAgent,
		&ipAddress,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	session.UserAgent = userAgent.String
	session.IPAddress = ipAddress.String

	return session, nil
}

func (s *sessionRepositoryImpl) Revoke(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	_, err := q.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		time.Now().UTC(), id,
	)
	return err
}

func (s *sessionRepositoryImpl) DeleteByUserID(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, s.db)

	_, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (s *sessionRepositoryImpl) DeleteInactive(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, s.db)

	res, err := q.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ? OR revoked_at IS NOT NULL`,
		now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive sessions: %w", err)
	}
	return res.RowsAffected()
}
