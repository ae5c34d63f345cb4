package user

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/reimbursement-backend-go/internal/pkg/validator"
)

// UserResponse is the outward projection of a user; the password never leaves the service.
type UserResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	}
}

// RegisterRequest represents request to register a new employee
type RegisterRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "Username cannot be empty!",
		})
	} else if validator.IsSentinel(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "Username cannot be None",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "firstName",
			Message: "Firstname cannot be empty!",
		})
	} else if validator.IsSentinel(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "firstName",
			Message: "Firstname cannot be None",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "lastName",
			Message: "Lastname cannot be empty!",
		})
	} else if validator.IsSentinel(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "lastName",
			Message: "Lastname cannot be None",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "Password cannot be empty!",
		})
	} else if !validator.IsValidPassword(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: validator.PasswordPolicyMessage,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "Username cannot be empty",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "Password cannot be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRoleRequest represents request to update user role.
// Only promotion to manager is allowed.
type UpdateRoleRequest struct {
	ID   int64  `json:"-"`
	Role string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "userId",
			Message: "userId must be a positive integer",
		})
	}

	if r.Role != string(RoleManager) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: fmt.Sprintf("%s is not a valid role for this action!", strings.TrimSpace(r.Role)),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
