package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "foodgram.db", cfg.Database.URL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Subscriptions.RecipesLimit)
	assert.Equal(t, "Shopping list", cfg.ShoppingList.Title)
	assert.Equal(t, "/media", cfg.Media.URLPrefix)
	assert.Equal(t, int64(5<<20), cfg.Media.MaxBytes)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/foodgram")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("SUBSCRIPTIONS_RECIPES_LIMIT", "6")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MEDIA_DIR", "/srv/media")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@localhost/foodgram", cfg.Database.URL)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 6, cfg.Subscriptions.RecipesLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "/srv/media", cfg.Media.Dir)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shopping_list:\n  title: Groceries\nsubscriptions:\n  recipes_limit: 1\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Groceries", cfg.ShoppingList.Title)
	assert.Equal(t, 1, cfg.Subscriptions.RecipesLimit)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsNegativeRecipesLimit(t *testing.T) {
	t.Setenv("SUBSCRIPTIONS_RECIPES_LIMIT", "-1")

	_, err := Load()
	require.Error(t, err)
}
