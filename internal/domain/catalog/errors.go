package catalog

import "foodgram/internal/pkg/apperr"

var (
	ErrIngredientNotFound = apperr.NotFound("ingredients", "ingredient not found")
	ErrTagNotFound        = apperr.NotFound("tags", "tag not found")
)
