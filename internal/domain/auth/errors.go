package auth

import "errors"

var (
	ErrLoginFailed     = errors.New("Login Failed!")
	ErrNotLoggedIn     = errors.New("First, you must be logged in!")
	ErrInvalidToken    = errors.New("invalid or expired session token")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired or was revoked")
)
