package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

// NewSessionRepository creates a new instance of auth.SessionRepository.
func NewSessionRepository(db *database.DB) auth.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

func (s *sessionRepositoryImpl) Create(ctx context.Context, session auth.Session) error {
	q := GetQuerier(ctx, s.db)
	query := `
		INSERT INTO sessions (id, user_id, expires_at, user_agent, ip_address)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, session.ID, session.UserID, session.ExpiresAt.UTC(), session.UserAgent, session.IPAddress)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (s *sessionRepositoryImpl) GetByID(ctx context.Context, id string) (auth.Session, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id::text, user_id, expires_at, revoked_at, COALESCE(user_agent, ''), COALESCE(ip_address, ''), created_at
		FROM sessions
		WHERE id::text = $1
	`

	var session auth.Session
	err := q.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.ExpiresAt,
		&session.RevokedAt,
		&session.UserAgent,
		&session.IPAddress,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (s *sessionRepositoryImpl) Revoke(ctx context.Context, id string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		UPDATE sessions
		SET revoked_at = NOW()
		WHERE id::text = $1 AND revoked_at IS NULL
	`
	_, err := q.Exec(ctx, query, id)
	return err
}

func (s *sessionRepositoryImpl) DeleteByUserID(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, s.db)

	_, err := q.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (s *sessionRepositoryImpl) DeleteInactive(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, s.db)

	tag, err := q.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1 OR revoked_at IS NOT NULL`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
