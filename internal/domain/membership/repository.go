package membership

import (
	"context"

	"gorm.io/gorm"

	"foodgram/internal/database"
)

type Repository interface {
	// Insert stores m. It returns errDuplicate when the unique index
	// rejects the row, which is the only duplicate check there is.
	Insert(ctx context.Context, m *Membership) error
	Delete(ctx context.Context, userID, recipeID int64, kind Kind) (int64, error)
	RecipeIDs(ctx context.Context, userID int64, kind Kind) ([]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, m *Membership) error {
	err := r.db.WithContext(ctx).Omit("User", "Recipe").Create(m).Error
	if database.IsUniqueViolation(err) {
		return errDuplicate
	}
	return err
}

func (r *repository) Delete(ctx context.Context, userID, recipeID int64, kind Kind) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND kind = ?", userID, recipeID, kind).
		Delete(&Membership{})
	return res.RowsAffected, res.Error
}

func (r *repository) RecipeIDs(ctx context.Context, userID int64, kind Kind) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&Membership{}).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("recipe_id ASC").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
