package recipe

import (
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

type IngredientAmount struct {
	ID     int64 `json:"id"`
	Amount int64 `json:"amount"`
}

// WriteRequest is the payload of both create and update. Tags and
// ingredients always replace what the recipe had before.
type WriteRequest struct {
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time"`
	Image       string             `json:"image"`
	Tags        []int64            `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// ListQuery narrows GET /recipes. Zero values mean "no filter".
type ListQuery struct {
	AuthorID  int64
	Tags      []string
	Favorited bool
	InCart    bool
	Limit     int
}

type IngredientLine struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

type Response struct {
	ID               int64            `json:"id"`
	Tags             []catalog.Tag    `json:"tags"`
	Author           user.Response    `json:"author"`
	Ingredients      []IngredientLine `json:"ingredients"`
	IsFavorited      bool             `json:"is_favorited"`
	IsInShoppingCart bool             `json:"is_in_shopping_cart"`
	Name             string           `json:"name"`
	Image            string           `json:"image"`
	Text             string           `json:"text"`
	CookingTime      int              `json:"cooking_time"`
}

// ShortResponse is the compact form used by membership and subscription
// responses.
type ShortResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func ToShortResponse(r *Recipe) ShortResponse {
	return ShortResponse{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

func ToShortResponses(recipes []Recipe) []ShortResponse {
	out := make([]ShortResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, ToShortResponse(&recipes[i]))
	}
	return out
}
