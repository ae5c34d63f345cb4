package user

import (
	"context"
)

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	// Login reports found=false with a nil error when the credentials match no user.
	Login(ctx context.Context, req LoginRequest) (u User, found bool, err error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (UserResponse, error)
}
