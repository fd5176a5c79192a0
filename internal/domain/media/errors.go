package media

import "foodgram/internal/pkg/apperr"

var (
	ErrMalformedImage = apperr.Validation("image", "image must be a base64 data URI")
	ErrImageTooLarge  = apperr.Validation("image", "image exceeds maximum allowed size")
	ErrImageType      = apperr.Validation("image", "image type is not allowed")
	ErrImageNotFound  = apperr.NotFound("image", "image not found")
)
