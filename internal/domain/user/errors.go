package user

import "errors"

var (
	ErrUserNotFound     = errors.New("User is not found")
	ErrNoUsers          = errors.New("No user found in the system!")
	ErrUsernameExists   = errors.New("Username is already taken")
	ErrManagerRequired  = errors.New("manager access required")
	ErrCannotDeleteSelf = errors.New("You cannot delete yourself!")
)
