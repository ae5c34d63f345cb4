package auth

import (
	"context"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
)

// Session is the server-side record behind a session cookie.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	RevokedAt *time.Time
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// Active reports whether the session may still authenticate requests at now.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID    int64
	Username  string
	Role      user.Role
	SessionID string
}

func (p Principal) IsManager() bool {
	return p.Role == user.RoleManager
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by the session middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
