package recipe

import (
	"time"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/user"
)

type Recipe struct {
	ID          int64              `gorm:"primaryKey"`
	AuthorID    int64              `gorm:"not null;index"`
	Author      *user.User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Name        string             `gorm:"size:200;not null"`
	Text        string             `gorm:"type:text;not null"`
	CookingTime int                `gorm:"not null"`
	Image       string             `gorm:"type:text"`
	CreatedAt   time.Time          `gorm:"autoCreateTime;index"`
	Tags        []catalog.Tag      `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient is one ingredient line of a recipe. A recipe holds at
// most one line per ingredient.
type RecipeIngredient struct {
	ID           int64               `gorm:"primaryKey"`
	RecipeID     int64               `gorm:"not null;uniqueIndex:idx_recipe_ingredient"`
	IngredientID int64               `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index"`
	Ingredient   *catalog.Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:RESTRICT"`
	Amount       int64               `gorm:"not null"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
