package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
)

type AuthServiceImpl struct {
	userService user.UserService
	userRepo    user.UserRepository
	sessionRepo auth.SessionRepository
	jwt.Service
}

func NewAuthService(userService user.UserService, userRepo user.UserRepository, sessionRepo auth.SessionRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userService: userService,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		Service:     jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq user.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	userData, found, err := a.userService.Login(ctx, loginReq)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if !found {
		return auth.LoginResponse{}, auth.ErrLoginFailed
	}

	sessionID := uuid.NewString()
	token, expiresAt, err := a.Service.GenerateSessionToken(userData.ID, userData.Role, sessionID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create session token: %w", err)
	}

	err = a.sessionRepo.Create(ctx, auth.Session{
		ID:        sessionID,
		UserID:    userData.ID,
		ExpiresAt: time.Unix(expiresAt, 0),
		UserAgent: sessionTrackReq.UserAgent,
		IPAddress: sessionTrackReq.IPAddress,
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to save session to database: %w", err)
	}

	return auth.LoginResponse{
		User:      user.NewUserResponse(userData),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	if err := a.sessionRepo.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, sessionID string, userID int64) (auth.Principal, error) {
	session, err := a.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return auth.Principal{}, err
	}
	if session.UserID != userID {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	if !session.Active(time.Now()) {
		return auth.Principal{}, auth.ErrSessionExpired
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.Principal{}, auth.ErrSessionNotFound
		}
		return auth.Principal{}, err
	}

	return auth.Principal{
		UserID:    userData.ID,
		Username:  userData.Username,
		Role:      userData.Role,
		SessionID: session.ID,
	}, nil
}
