package recipe

import (
	"context"
	"fmt"
	"math"
	"sort"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/pkg/apperr"
	"foodgram/internal/pkg/validator"
)

// MaxAmount bounds a single ingredient amount to the 32-bit range of the
// amount column, so shopping-list sums stay exact in int64.
const MaxAmount = math.MaxInt32

// validated is a write payload that passed every check, with ingredient
// lines sorted by catalog id and tags resolved.
type validated struct {
	links []RecipeIngredient
	tags  []catalog.Tag
}

// validate runs the checks in a fixed order: ingredients present, every
// ingredient known, no duplicate ingredient, positive amounts, tags present
// and unique and known, positive cooking time, then the scalar fields.
// Nothing is written before it returns.
func (s *Service) validate(ctx context.Context, req *WriteRequest) (*validated, error) {
	if len(req.Ingredients) == 0 {
		return nil, ErrIngredientsRequired
	}

	ids := make([]int64, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		ids = append(ids, in.ID)
	}
	found, err := s.catalog.FindIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]catalog.Ingredient, len(found))
	for _, ing := range found {
		known[ing.ID] = ing
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperr.Wrap(catalog.ErrIngredientNotFound, fmt.Errorf("ingredient id %d", id))
		}
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperr.Wrap(ErrDuplicateIngredient, fmt.Errorf("ingredient id %d", id))
		}
		seen[id] = struct{}{}
	}

	links := make([]RecipeIngredient, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		if in.Amount <= 0 {
			return nil, apperr.Wrap(ErrInvalidAmount, fmt.Errorf("ingredient id %d amount %d", in.ID, in.Amount))
		}
		if in.Amount > MaxAmount {
			return nil, apperr.Wrap(ErrAmountTooLarge, fmt.Errorf("ingredient id %d amount %d", in.ID, in.Amount))
		}
		links = append(links, RecipeIngredient{IngredientID: in.ID, Amount: in.Amount})
	}
	sort.Slice(links, func(i, j int) bool { return links[i].IngredientID < links[j].IngredientID })

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	if req.CookingTime <= 0 {
		return nil, ErrInvalidCookingTime
	}

	if errs := validator.Validate(req); len(errs) > 0 {
		for _, field := range []string{"name", "text"} {
			if tag, ok := errs[field]; ok {
				return nil, apperr.Validation(field, scalarMessage(tag))
			}
		}
	}

	return &validated{links: links, tags: tags}, nil
}

func (s *Service) resolveTags(ctx context.Context, ids []int64) ([]catalog.Tag, error) {
	if len(ids) == 0 {
		return nil, ErrTagsRequired
	}

	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return nil, apperr.Wrap(ErrDuplicateTag, fmt.Errorf("tag id %d", id))
		}
		seen[id] = struct{}{}
	}

	tags, err := s.catalog.FindTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		resolved := make(map[int64]struct{}, len(tags))
		for _, t := range tags {
			resolved[t.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := resolved[id]; !ok {
				return nil, apperr.Wrap(ErrUnknownTag, fmt.Errorf("tag id %d", id))
			}
		}
	}
	return tags, nil
}

func scalarMessage(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}
