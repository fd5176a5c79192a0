package recipe

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ListFilter is the storage-level form of ListQuery. When RestrictIDs is
// set only recipes in IDs are returned, so an empty IDs yields nothing.
type ListFilter struct {
	AuthorID    int64
	TagSlugs    []string
	RestrictIDs bool
	IDs         []int64
	Limit       int
}

type Repository interface {
	// Create stores the recipe, its tag set and its ingredient lines in one
	// transaction.
	Create(ctx context.Context, r *Recipe) error
	// Replace overwrites the scalar fields and swaps the tag set and all
	// ingredient lines in one transaction.
	Replace(ctx context.Context, r *Recipe) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Recipe, error)
	// GetOwnership loads only id, author_id and image.
	GetOwnership(ctx context.Context, id int64) (*Recipe, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f ListFilter) ([]Recipe, error)
	ListByAuthor(ctx context.Context, authorID int64, limit int) ([]Recipe, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Recipe) error {
	links := rec.Ingredients
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// tags are written with the row; ingredient lines go in separately
		// so they are stored in catalog order
		if err := tx.Omit("Author", "Ingredients", "Tags.*").Create(rec).Error; err != nil {
			return err
		}
		return insertLinks(tx, rec.ID, links)
	})
}

func (r *repository) Replace(ctx context.Context, rec *Recipe) error {
	links := rec.Ingredients
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Recipe{}).Where("id = ?", rec.ID).Updates(map[string]any{
			"name":         rec.Name,
			"text":         rec.Text,
			"cooking_time": rec.CookingTime,
			"image":        rec.Image,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}

		if err := tx.Model(&Recipe{ID: rec.ID}).Association("Tags").Replace(rec.Tags); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, rec.ID, links)
	})
}

func insertLinks(tx *gorm.DB, recipeID int64, links []RecipeIngredient) error {
	for i := range links {
		links[i].ID = 0
		links[i].RecipeID = recipeID
		links[i].Ingredient = nil
	}
	return tx.Create(&links).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeIngredient{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRecipeNotFound
		}
		return nil
	})
}

func (r *repository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id ASC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredient_id ASC") }).
		Preload("Ingredients.Ingredient")
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	err := r.withDetails(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) GetOwnership(ctx context.Context, id int64) (*Recipe, error) {
	var rec Recipe
	err := r.db.WithContext(ctx).Select("id", "author_id", "image").First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Recipe{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) List(ctx context.Context, f ListFilter) ([]Recipe, error) {
	var recipes []Recipe
	if f.RestrictIDs && len(f.IDs) == 0 {
		return recipes, nil
	}

	q := r.withDetails(ctx).Model(&Recipe{})
	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		tagged := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", tagged)
	}
	if f.RestrictIDs {
		q = q.Where("recipes.id IN ?", f.IDs)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	err := q.Order("recipes.created_at DESC").Order("recipes.id DESC").Find(&recipes).Error
	return recipes, err
}

// ListByAuthor returns the newest recipes of an author without
// associations. limit <= 0 returns nothing.
func (r *repository) ListByAuthor(ctx context.Context, authorID int64, limit int) ([]Recipe, error) {
	var recipes []Recipe
	if limit <= 0 {
		return recipes, nil
	}
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

func (r *repository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
