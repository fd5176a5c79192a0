// Package app assembles the HTTP application from the domain packages.
package app

import (
	"fmt"

	"gorm.io/gorm"

	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/media"
	"foodgram/internal/domain/membership"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/subscription"
	"foodgram/internal/domain/user"
)

// Models lists every persisted model in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&catalog.Ingredient{},
		&catalog.Tag{},
		&recipe.Recipe{},
		&recipe.RecipeIngredient{},
		&membership.Membership{},
		&subscription.Subscription{},
		&media.Image{},
	}
}

func Migrate(db *gorm.DB) error {
	for _, m := range Models() {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrate %T: %w", m, err)
		}
	}
	return nil
}
