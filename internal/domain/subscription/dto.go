package subscription

import (
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
)

// AuthorResponse is a followed author with a preview of their recipes.
type AuthorResponse struct {
	user.Response
	Recipes      []recipe.ShortResponse `json:"recipes"`
	RecipesCount int64                  `json:"recipes_count"`
}

// ListParams controls GET /users/subscriptions. A nil RecipesLimit uses the
// configured default.
type ListParams struct {
	RecipesLimit *int
	Page         int
	Limit        int
}

type Page struct {
	Count   int64            `json:"count"`
	Results []AuthorResponse `json:"results"`
}
