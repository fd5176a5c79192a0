package subscription

import (
	"errors"

	"foodgram/internal/pkg/apperr"
)

var (
	ErrSelfSubscription  = apperr.Validation("", "cannot subscribe to yourself")
	ErrAlreadySubscribed = apperr.Conflict("", "already subscribed to this author")
	ErrNotSubscribed     = apperr.NotFound("", "not subscribed to this author")
	ErrInvalidLimit      = apperr.Validation("recipes_limit", "recipes_limit must not be negative")
	ErrInvalidPage       = apperr.Validation("page", "page must be positive")
	ErrInvalidPageSize   = apperr.Validation("limit", "limit must not be negative")

	errDuplicate = errors.New("subscription already exists")
)
