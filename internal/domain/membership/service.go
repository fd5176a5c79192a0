package membership

import (
	"context"
	"errors"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
)

// RecipeReader loads the recipe being added to a set.
type RecipeReader interface {
	GetByID(ctx context.Context, id int64) (*recipe.Recipe, error)
}

// Service manages every membership set through the same add and remove
// rules; the sets only differ by Kind.
type Service struct {
	repo    Repository
	recipes RecipeReader
}

func NewService(repo Repository, recipes RecipeReader) *Service {
	return &Service{repo: repo, recipes: recipes}
}

// Add puts recipeID into the user's kind set. A second add of the same
// pair fails with a conflict, including when two adds race.
func (s *Service) Add(ctx context.Context, userID, recipeID int64, kind Kind) (*Membership, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	rec, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	m := &Membership{UserID: userID, RecipeID: recipeID, Kind: kind}
	if err := s.repo.Insert(ctx, m); err != nil {
		if errors.Is(err, errDuplicate) {
			metrics.RecordMembershipConflict(string(kind))
			return nil, conflictError(kind)
		}
		return nil, err
	}
	m.Recipe = rec

	metrics.RecordMembershipChange(string(kind), "add")
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int64("recipe_id", recipeID).
		Str("kind", string(kind)).
		Msg("membership added")
	return m, nil
}

// Remove deletes the pair from the set, failing with not found when it is
// not there.
func (s *Service) Remove(ctx context.Context, userID, recipeID int64, kind Kind) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}

	n, err := s.repo.Delete(ctx, userID, recipeID, kind)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFoundError(kind)
	}

	metrics.RecordMembershipChange(string(kind), "remove")
	return nil
}

func (s *Service) RecipeIDs(ctx context.Context, userID int64, kind Kind) ([]int64, error) {
	return s.repo.RecipeIDs(ctx, userID, kind)
}

func (s *Service) FavoritedIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.RecipeIDs(ctx, userID, KindFavorite)
}

func (s *Service) CartIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.RecipeIDs(ctx, userID, KindCart)
}
