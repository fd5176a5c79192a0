package membership

import (
	"time"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
)

// Kind names one of the independent membership sets.
type Kind string

const (
	KindFavorite Kind = "favorite"
	KindCart     Kind = "cart"
)

func (k Kind) Valid() bool {
	return k == KindFavorite || k == KindCart
}

// Membership puts a recipe into one of a user's sets. (user, recipe, kind)
// is unique.
type Membership struct {
	ID        int64          `gorm:"primaryKey"`
	UserID    int64          `gorm:"not null;uniqueIndex:idx_membership_user_recipe_kind,priority:1"`
	RecipeID  int64          `gorm:"not null;index;uniqueIndex:idx_membership_user_recipe_kind,priority:2"`
	Kind      Kind           `gorm:"size:16;not null;uniqueIndex:idx_membership_user_recipe_kind,priority:3"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	User      *user.User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe    *recipe.Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

func (Membership) TableName() string {
	return "recipe_memberships"
}
