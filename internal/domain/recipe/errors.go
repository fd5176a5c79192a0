package recipe

import "foodgram/internal/pkg/apperr"

var (
	ErrRecipeNotFound = apperr.NotFound("", "recipe not found")
	ErrNotAuthor      = apperr.Forbidden("only the author can change this recipe")

	ErrIngredientsRequired = apperr.Validation("ingredients", "ingredients required")
	ErrDuplicateIngredient = apperr.Validation("ingredients", "duplicate ingredient")
	ErrInvalidAmount       = apperr.Validation("ingredients", "amount must be > 0")
	ErrAmountTooLarge      = apperr.Validation("ingredients", "amount must not exceed 2147483647")
	ErrTagsRequired        = apperr.Validation("tags", "tags required")
	ErrDuplicateTag        = apperr.Validation("tags", "duplicate tag")
	ErrUnknownTag          = apperr.Validation("tags", "unknown tag")
	ErrInvalidCookingTime  = apperr.Validation("cooking_time", "cooking time must be > 0")
	ErrInvalidLimit        = apperr.Validation("limit", "limit must not be negative")
)
