// load_ingredients imports the ingredient catalog from a CSV file with
// name,measurement_unit rows. Existing names are left untouched.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"


	"foodgram/internal/app"
	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/logging"
)

func main() {
	path := flag.String("file", "data/ingredients.csv", "CSV file to import")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		logging.Fatal().Err(err).Msg("database connection failed")
	}
	if err := app.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	f, err := os.Open(*path)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *path).Msg("open failed")
	}
	defer f.Close()

	svc := catalog.NewService(catalog.NewRepository(db))
	read, inserted, err := svc.ImportIngredients(context.Background(), f)
	if err != nil {
		logging.Fatal().Err(err).Str("file", *path).Msg("import failed")
	}
	logging.Info().Str("file", *path).Int("read", read).Int64("inserted", inserted).Msg("ingredients imported")
}
