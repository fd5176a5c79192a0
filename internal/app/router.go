package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/domain/catalog"
	"foodgram/internal/domain/media"
	"foodgram/internal/domain/membership"
	"foodgram/internal/domain/recipe"
	"foodgram/internal/domain/shoppinglist"
	"foodgram/internal/domain/subscription"
	"foodgram/internal/domain/user"
	"foodgram/internal/middleware"
	jwtsvc "foodgram/internal/pkg/jwt"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
// Routes live under /api; /health, /metrics and the media directory sit at
// the root.
func NewRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	sx, err := database.SQLX(db)
	if err != nil {
		return nil, err
	}

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	catalogService := catalog.NewService(catalog.NewRepository(db))
	userService := user.NewService(user.NewRepository(db), j)

	recipeRepo := recipe.NewRepository(db)
	membershipService := membership.NewService(membership.NewRepository(db), recipeRepo)
	recipeService := recipe.NewService(recipeRepo, catalogService, membershipService, nil)
	subscriptionService := subscription.NewService(
		subscription.NewRepository(db),
		userService,
		recipeService,
		cfg.Subscriptions.RecipesLimit,
	)
	recipeService.SetSubscriptions(subscriptionService)
	recipeService.SetImages(media.NewStore(media.NewRepository(db), cfg.Media.Dir, cfg.Media.URLPrefix, cfg.Media.MaxBytes))
	shoppingService := shoppinglist.NewService(shoppinglist.NewRepository(sx), cfg.ShoppingList.Title)

	userHandler := user.NewHandler(userService, subscriptionService)
	catalogHandler := catalog.NewHandler(catalogService)
	recipeHandler := recipe.NewHandler(recipeService)
	membershipHandler := membership.NewHandler(membershipService)
	subscriptionHandler := subscription.NewHandler(subscriptionService)
	shoppingHandler := shoppinglist.NewHandler(shoppingService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static(cfg.Media.URLPrefix, cfg.Media.Dir)

	api := r.Group("/api")

	public := api.Group("")
	public.Use(middleware.OptionalJWT(j))
	{
		userHandler.RegisterPublicRoutes(public, middleware.RateLimit(cfg.Auth.LoginRatePerMinute))
		catalogHandler.RegisterRoutes(public)
		recipeHandler.RegisterPublicRoutes(public)
	}

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(j))
	{
		userHandler.RegisterProtectedRoutes(protected)
		recipeHandler.RegisterProtectedRoutes(protected)
		membershipHandler.RegisterProtectedRoutes(protected)
		subscriptionHandler.RegisterProtectedRoutes(protected)
		shoppingHandler.RegisterProtectedRoutes(protected)
	}

	return r, nil
}
