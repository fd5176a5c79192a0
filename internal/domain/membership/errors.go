package membership

import (
	"errors"

	"foodgram/internal/pkg/apperr"
)

var (
	ErrAlreadyFavorited = apperr.Conflict("", "recipe is already in favorites")
	ErrAlreadyInCart    = apperr.Conflict("", "recipe is already in the shopping cart")
	ErrNotFavorited     = apperr.NotFound("", "recipe is not in favorites")
	ErrNotInCart        = apperr.NotFound("", "recipe is not in the shopping cart")
	ErrUnknownKind      = apperr.Validation("kind", "unknown membership set")

	errDuplicate = errors.New("membership already exists")
)

func conflictError(kind Kind) error {
	if kind == KindCart {
		return ErrAlreadyInCart
	}
	return ErrAlreadyFavorited
}

func notFoundError(kind Kind) error {
	if kind == KindCart {
		return ErrNotInCart
	}
	return ErrNotFavorited
}
