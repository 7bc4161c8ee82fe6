package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cameshop/cameshop-api/internal/api/handler"
	"github.com/cameshop/cameshop-api/internal/api/middleware"
	"github.com/cameshop/cameshop-api/internal/core/domain"
	"github.com/cameshop/cameshop-api/internal/core/service"
	"github.com/cameshop/cameshop-api/internal/infrastructure/config"
	mongodb "github.com/cameshop/cameshop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cameshop/cameshop-api/internal/infrastructure/db/redis"
	"github.com/cameshop/cameshop-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, issuer *service.TokenIssuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cameshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	userService := service.NewUserService(userRepo, issuer, throttle, log)
	itemService := service.NewItemService(itemRepo, log)

	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)

	authRequired := middleware.Auth(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/:id", userHandler.Get, authRequired)
	users.GET("", userHandler.List, authRequired, adminOnly)
	users.PUT("/:id", userHandler.Update, authRequired, adminOnly)
	users.DELETE("/:id", userHandler.Delete, authRequired, adminOnly)

	// --- Item routes ---
	items := e.Group("/items", authRequired)
	items.GET("", itemHandler.List)
	items.GET("/:id", itemHandler.Get)
	items.POST("", itemHandler.Create)
	items.PUT("/:id", itemHandler.Update, adminOnly)
	items.DELETE("/:id", itemHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
