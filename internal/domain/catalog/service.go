package catalog

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	return s.repo.ListIngredients(ctx, namePrefix)
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	return s.repo.GetIngredient(ctx, id)
}

// FindIngredients returns the catalog rows for ids in id order. Unknown ids
// are simply absent from the result.
func (s *Service) FindIngredients(ctx context.Context, ids []int64) ([]Ingredient, error) {
	return s.repo.FindIngredients(ctx, ids)
}

func (s *Service) ListTags(ctx context.Context) ([]Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*Tag, error) {
	return s.repo.GetTag(ctx, id)
}

func (s *Service) FindTags(ctx context.Context, ids []int64) ([]Tag, error) {
	return s.repo.FindTags(ctx, ids)
}

func (s *Service) AddIngredients(ctx context.Context, items []Ingredient) (int64, error) {
	return s.repo.CreateIngredients(ctx, items)
}

func (s *Service) AddTags(ctx context.Context, tags []Tag) (int64, error) {
	return s.repo.CreateTags(ctx, tags)
}
