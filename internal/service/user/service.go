package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/reimbursement"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

var compareHashAndPassword = bcrypt.CompareHashAndPassword

// unknownUserHash is compared against on a username miss so the response
// time does not reveal whether the account exists.
var unknownUserHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("unknown-user-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash placeholder password: %v", err))
	}
	return hash
})

type UserServiceImpl struct {
	transactor        database.Transactor
	userRepo          user.UserRepository
	reimbursementRepo reimbursement.ReimbursementRepository
	sessionRepo       auth.SessionRepository
}

func NewUserService(transactor database.Transactor, userRepo user.UserRepository, reimbursementRepo reimbursement.ReimbursementRepository, sessionRepo auth.SessionRepository) user.UserService {
	return &UserServiceImpl{
		transactor:        transactor,
		userRepo:          userRepo,
		reimbursementRepo: reimbursementRepo,
		sessionRepo:       sessionRepo,
	}
}

// Register implements user.UserService.
func (s *UserServiceImpl) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
	})
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

// Login implements user.UserService.
func (s *UserServiceImpl) Login(ctx context.Context, req user.LoginRequest) (user.User, bool, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, false, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			_ = compareHashAndPassword(unknownUserHash(), []byte(req.Password))
			return user.User{}, false, nil
		}
		return user.User{}, false, err
	}

	if err := compareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return user.User{}, false, nil
	}

	return u, true, nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.reimbursementRepo.DeleteByUserID(txCtx, id); err != nil {
			return err
		}
		if err := s.sessionRepo.DeleteByUserID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete sessions of user %d: %w", id, err)
		}
		return s.userRepo.Delete(txCtx, id)
	})
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, user.ErrNoUsers
	}

	out := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, user.NewUserResponse(u))
	}
	return out, nil
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) (user.UserResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, req.ID); err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.UpdateRole(ctx, req.ID, user.Role(req.Role))
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(updated), nil
}
