// seed fills a development database with demo users, tags, ingredients and
// recipes. Pass -reset to wipe existing rows first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"gorm.io/gorm"

	"foodgram/internal/app"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/user"
	"foodgram/internal/logging"
)

const demoPassword = "foodgram123"

func main() {
	reset := flag.Bool("reset", false, "delete existing data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "console"})

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	if err := app.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	if *reset {
		if err := cleanup(db); err != nil {
			logging.Fatal().Err(err).Msg("cleanup failed")
		}
	}

	if err := seed(context.Background(), db); err != nil {
		logging.Fatal().Err(err).Msg("seed failed")
	}
	logging.Info().Str("password", demoPassword).Msg("seed completed")
}

// cleanup deletes in child-to-parent order so foreign keys hold.
func cleanup(db *gorm.DB) error {
	for _, table := range []string{
		"subscriptions",
		"recipe_memberships",
		"recipe_ingredients",
		"recipe_tags",
		"recipes",
		"tags",
		"ingredients",
		"users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}
	return nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	userRepo := user.NewRepository(db)
	users := user.NewService(userRepo, nil)
	cat := catalog.NewService(catalog.NewRepository(db))
	recipes := recipe.NewService(recipe.NewRepository(db), cat, nil, nil)

	if _, err := cat.AddTags(ctx, []catalog.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}); err != nil {
		return fmt.Errorf("tags: %w", err)
	}
	if _, err := cat.AddIngredients(ctx, []catalog.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "sugar", MeasurementUnit: "g"},
		{Name: "egg", MeasurementUnit: "pcs"},
		{Name: "milk", MeasurementUnit: "ml"},
		{Name: "butter", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "pinch"},
	}); err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}

	tags, err := cat.ListTags(ctx)
	if err != nil {
		return err
	}
	ingredients, err := cat.ListIngredients(ctx, "")
	if err != nil {
		return err
	}
	tagID := make(map[string]int64, len(tags))
	for _, t := range tags {
		tagID[t.Slug] = t.ID
	}
	ingID := make(map[string]int64, len(ingredients))
	for _, i := range ingredients {
		ingID[i.Name] = i.ID
	}

	cooks := []*user.User{
		{Email: "anna@foodgram.local", Username: "anna", FirstName: "Anna", LastName: "Petrova"},
		{Email: "timur@foodgram.local", Username: "timur", FirstName: "Timur", LastName: "Abenov"},
	}
	for _, u := range cooks {
		// existing users keep ID 0 here so their recipes are not duplicated
		_, err := userRepo.GetByEmail(ctx, u.Email)
		if err == nil {
			logging.Info().Str("email", u.Email).Msg("user exists, skipping")
			continue
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		if err := users.Create(ctx, u, demoPassword); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		logging.Info().Str("email", u.Email).Int64("id", u.ID).Msg("user created")
	}

	demo := []struct {
		author *user.User
		req    recipe.WriteRequest
	}{
		{cooks[0], recipe.WriteRequest{
			Name:        "Pancakes",
			Text:        "Whisk everything together and fry thin pancakes in butter.",
			CookingTime: 25,
			Tags:        []int64{tagID["breakfast"]},
			Ingredients: []recipe.IngredientAmount{
				{ID: ingID["flour"], Amount: 200},
				{ID: ingID["milk"], Amount: 500},
				{ID: ingID["egg"], Amount: 2},
				{ID: ingID["sugar"], Amount: 30},
			},
		}},
		{cooks[1], recipe.WriteRequest{
			Name:        "Shortbread",
			Text:        "Rub butter into flour and sugar, press into a tin and bake.",
			CookingTime: 45,
			Tags:        []int64{tagID["dinner"], tagID["lunch"]},
			Ingredients: []recipe.IngredientAmount{
				{ID: ingID["flour"], Amount: 300},
				{ID: ingID["butter"], Amount: 200},
				{ID: ingID["sugar"], Amount: 100},
				{ID: ingID["salt"], Amount: 1},
			},
		}},
	}
	for _, d := range demo {
		if d.author.ID == 0 {
			continue
		}
		rec, err := recipes.Create(ctx, d.author.ID, d.req)
		if err != nil {
			return fmt.Errorf("recipe %s: %w", d.req.Name, err)
		}
		logging.Info().Str("name", rec.Name).Int64("id", rec.ID).Msg("recipe created")
	}
	return nil
}
