package auth

import (
	"context"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req user.LoginRequest, sessionReq SessionTrackingRequest) (LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a verified token's session and subject into the
	// current principal, with the role read fresh from storage.
	Authenticate(ctx context.Context, sessionID string, userID int64) (Principal, error)
}
