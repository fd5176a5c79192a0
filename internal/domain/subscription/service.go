package subscription

import (
	"context"
	"errors"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/logging"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// RecipePreviewer supplies the recipe preview shown next to each author.
type RecipePreviewer interface {
	Preview(ctx context.Context, authorID int64, limit int) ([]recipe.ShortResponse, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type Service struct {
	repo         Repository
	users        UserReader
	recipes      RecipePreviewer
	recipesLimit int
}

// NewService builds the subscription service. recipesLimit is the preview
// size used when the caller does not pass one.
func NewService(repo Repository, users UserReader, recipes RecipePreviewer, recipesLimit int) *Service {
	return &Service{repo: repo, users: users, recipes: recipes, recipesLimit: recipesLimit}
}

// Subscribe makes subscriberID follow authorID.
func (s *Service) Subscribe(ctx context.Context, subscriberID, authorID int64) error {
	if subscriberID == authorID {
		return ErrSelfSubscription
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return err
	}

	err := s.repo.Create(ctx, &Subscription{AuthorID: authorID, SubscriberID: subscriberID})
	if errors.Is(err, errDuplicate) {
		return ErrAlreadySubscribed
	}
	if err != nil {
		return err
	}

	logging.Ctx(ctx).Info().Int64("subscriber_id", subscriberID).Int64("author_id", authorID).Msg("subscribed")
	return nil
}

func (s *Service) Unsubscribe(ctx context.Context, subscriberID, authorID int64) error {
	n, err := s.repo.Delete(ctx, subscriberID, authorID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotSubscribed
	}
	return nil
}

func (s *Service) IsSubscribed(ctx context.Context, subscriberID, authorID int64) (bool, error) {
	if subscriberID == 0 || subscriberID == authorID {
		return false, nil
	}
	return s.repo.Exists(ctx, subscriberID, authorID)
}

// Author describes one followed author the way the subscription list does.
func (s *Service) Author(ctx context.Context, authorID int64, recipesLimit *int) (*AuthorResponse, error) {
	limit, err := s.resolveLimit(recipesLimit)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, author, limit)
}

// List returns the authors subscriberID follows, each with its newest
// recipes truncated to the preview limit. A zero Page is the first page and
// a zero Limit returns every author.
func (s *Service) List(ctx context.Context, subscriberID int64, p ListParams) (*Page, error) {
	limit, err := s.resolveLimit(p.RecipesLimit)
	if err != nil {
		return nil, err
	}
	if p.Page < 0 {
		return nil, ErrInvalidPage
	}
	if p.Limit < 0 {
		return nil, ErrInvalidPageSize
	}

	offset := 0
	if p.Limit > 0 && p.Page > 1 {
		offset = (p.Page - 1) * p.Limit
	}

	authors, total, err := s.repo.ListAuthors(ctx, subscriberID, p.Limit, offset)
	if err != nil {
		return nil, err
	}

	page := &Page{Count: total, Results: make([]AuthorResponse, 0, len(authors))}
	for i := range authors {
		entry, err := s.describe(ctx, &authors[i], limit)
		if err != nil {
			return nil, err
		}
		page.Results = append(page.Results, *entry)
	}
	return page, nil
}

func (s *Service) describe(ctx context.Context, author *user.User, limit int) (*AuthorResponse, error) {
	preview, err := s.recipes.Preview(ctx, author.ID, limit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorResponse{
		Response:     user.ToResponse(author, true),
		Recipes:      preview,
		RecipesCount: count,
	}, nil
}

func (s *Service) resolveLimit(limit *int) (int, error) {
	if limit == nil {
		return s.recipesLimit, nil
	}
	if *limit < 0 {
		return 0, ErrInvalidLimit
	}
	return *limit, nil
}
