package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*Ingredient, error)
	FindIngredients(ctx context.Context, ids []int64) ([]Ingredient, error)
	CreateIngredients(ctx context.Context, items []Ingredient) (int64, error)

	ListTags(ctx context.Context) ([]Tag, error)
	GetTag(ctx context.Context, id int64) (*Tag, error)
	FindTags(ctx context.Context, ids []int64) ([]Tag, error)
	CreateTags(ctx context.Context, tags []Tag) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	q := r.db.WithContext(ctx).Model(&Ingredient{})
	if p := strings.TrimSpace(namePrefix); p != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, strings.ToLower(likeEscaper.Replace(p))+"%")
	}

	var items []Ingredient
	if err := q.Order("name ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) GetIngredient(ctx context.Context, id int64) (*Ingredient, error) {
	var item Ingredient
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindIngredients(ctx context.Context, ids []int64) ([]Ingredient, error) {
	var items []Ingredient
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&items).Error
	return items, err
}

// CreateIngredients inserts items, skipping names already in the catalog.
// It returns the number of rows actually inserted.
func (r *repository) CreateIngredients(ctx context.Context, items []Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		CreateInBatches(&items, 500)
	return res.RowsAffected, res.Error
}

func (r *repository) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.db.WithContext(ctx).Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *repository) GetTag(ctx context.Context, id int64) (*Tag, error) {
	var tag Tag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *repository) FindTags(ctx context.Context, ids []int64) ([]Tag, error) {
	var tags []Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&tags).Error
	return tags, err
}

func (r *repository) CreateTags(ctx context.Context, tags []Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
		Create(&tags)
	return res.RowsAffected, res.Error
}
