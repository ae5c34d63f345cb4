package auth

import "github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

// LoginResponse carries the signed session token for the cookie next to the
// user projection returned in the body.
type LoginResponse struct {
	User      user.UserResponse
	Token     string
	ExpiresAt int64
}
