package user

import "foodgram/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")
	ErrUserNotFound       = apperr.NotFound("", "user not found")
	ErrEmailTaken         = apperr.Conflict("email", "email already registered")
	ErrUsernameTaken      = apperr.Conflict("username", "username already taken")
)
