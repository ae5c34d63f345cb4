package auth

import (
	"context"
	"time"
)

type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Revoke(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID int64) error
	// DeleteInactive removes sessions expired before now or already revoked.
	DeleteInactive(ctx context.Context, now time.Time) (int64, error)
}
