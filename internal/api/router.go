package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stockcontrol/inventory-api/internal/api/handler"
	"github.com/stockcontrol/inventory-api/internal/api/middleware"
	"github.com/stockcontrol/inventory-api/internal/core/domain"
	"github.com/stockcontrol/inventory-api/internal/core/service"
	mongostore "github.com/stockcontrol/inventory-api/internal/infrastructure/db/mongo"
	redisstore "github.com/stockcontrol/inventory-api/internal/infrastructure/db/redis"
	"github.com/stockcontrol/inventory-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The composition root owns every dependency; nothing here is a process-wide
// singleton.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	authRepo := mongostore.NewAuthRepository(db)
	categoryRepo := mongostore.NewCategoryRepository(db)
	itemRepo := mongostore.NewItemRepository(db)
	cache := redisstore.NewListingCache(rdb)
	guard := service.NewIntegrityGuard(categoryRepo, itemRepo)

	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	categoryService := service.NewCategoryService(categoryRepo, guard, cache, log)
	itemService := service.NewItemService(itemRepo, guard, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	itemHandler := handler.NewItemHandler(itemService)

	requireAuth := middleware.Auth(cfg.JWTSecret)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/validate-token", authHandler.ValidateToken)
	e.POST("/auth/change-role", authHandler.ChangeRole, requireAuth, requireAdmin)

	// --- Category routes (writes are admin-gated) ---
	categories := e.Group("/api/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", categoryHandler.Create, requireAuth, requireAdmin)
	categories.POST("/", categoryHandler.Create, requireAuth, requireAdmin)
	categories.PUT("/:id", categoryHandler.Update, requireAuth, requireAdmin)
	categories.DELETE("/:id", categoryHandler.Delete, requireAuth, requireAdmin)

	// --- Item routes (writes are admin-gated) ---
	items := e.Group("/api/items")
	items.GET("", itemHandler.List)
	items.GET("/", itemHandler.List)
	items.GET("/:id", itemHandler.Get)
	items.POST("", itemHandler.Create, requireAuth, requireAdmin)
	items.POST("/", itemHandler.Create, requireAuth, requireAdmin)
	items.PUT("/:id", itemHandler.Update, requireAuth, requireAdmin)
	items.DELETE("/:id", itemHandler.Delete, requireAuth, requireAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
