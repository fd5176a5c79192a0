package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	defaultJWTSecret   = "change-me-jwt-secret"
	ConfigPathEnvVar   = "CONFIG_PATH"
	defaultConfigFile  = "config.yaml"
	defaultRecipeLimit = 3
)

type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Database      DatabaseConfig      `koanf:"database"`
	Auth          AuthConfig          `koanf:"auth"`
	Logging       LoggingConfig       `koanf:"logging"`
	CORS          CORSConfig          `koanf:"cors"`
	Subscriptions SubscriptionsConfig `koanf:"subscriptions"`
	ShoppingList  ShoppingListConfig  `koanf:"shopping_list"`
	Media         MediaConfig         `koanf:"media"`
}

type ServerConfig struct {
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`
}

type DatabaseConfig struct {
	// URL is a postgres:// DSN or a SQLite file path.
	URL string `koanf:"url"`
}

type AuthConfig struct {
	JWTSecret          string        `koanf:"jwt_secret"`
	TokenTTL           time.Duration `koanf:"token_ttl"`
	LoginRatePerMinute int           `koanf:"login_rate_per_minute"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type SubscriptionsConfig struct {
	// RecipesLimit is the preview size used when a request has no recipes_limit.
	RecipesLimit int `koanf:"recipes_limit"`
}

type ShoppingListConfig struct {
	Title string `koanf:"title"`
}

// MediaConfig controls where decoded recipe images are written and the URL
// prefix they are served under.
type MediaConfig struct {
	Dir       string `koanf:"dir"`
	URLPrefix string `koanf:"url_prefix"`
	MaxBytes  int64  `koanf:"max_bytes"`
}

func defaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, Env: "dev"},
		Database: DatabaseConfig{URL: "foodgram.db"},
		Auth: AuthConfig{
			JWTSecret:          defaultJWTSecret,
			TokenTTL:           24 * time.Hour,
			LoginRatePerMinute: 10,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		CORS: CORSConfig{AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}},
		Subscriptions: SubscriptionsConfig{RecipesLimit: defaultRecipeLimit},
		ShoppingList:  ShoppingListConfig{Title: "Shopping list"},
		Media:         MediaConfig{Dir: "./media", URLPrefix: "/media", MaxBytes: 5 << 20},
	}
}

// envMappings maps supported environment variables to koanf paths.
var envMappings = map[string]string{
	"port":                        "server.port",
	"app_env":                     "server.env",
	"database_url":                "database.url",
	"jwt_secret":                  "auth.jwt_secret",
	"jwt_ttl":                     "auth.token_ttl",
	"login_rate_per_minute":       "auth.login_rate_per_minute",
	"log_level":                   "logging.level",
	"log_format":                  "logging.format",
	"cors_allowed_origins":        "cors.allowed_origins",
	"subscriptions_recipes_limit": "subscriptions.recipes_limit",
	"shopping_list_title":         "shopping_list.title",
	"media_dir":                   "media.dir",
	"media_url_prefix":            "media.url_prefix",
	"media_max_bytes":             "media.max_bytes",
}

func envTransform(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing priority. A .env file in the working directory
// is loaded into the environment first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if raw, ok := k.Get("cors.allowed_origins").(string); ok {
		if err := k.Set("cors.allowed_origins", splitList(raw)); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Auth.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be > 0")
	}
	if cfg.Subscriptions.RecipesLimit < 0 {
		return fmt.Errorf("SUBSCRIPTIONS_RECIPES_LIMIT must be >= 0")
	}
	if isProdLike(cfg.Server.Env) {
		secret := strings.TrimSpace(cfg.Auth.JWTSecret)
		if secret == "" || secret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}

// IsProduction reports whether the configured environment is prod-like.
func (c *Config) IsProduction() bool {
	return isProdLike(c.Server.Env)
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}
