package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aitbenali/autoparts-backend/internal/http/handlers"
	"github.com/aitbenali/autoparts-backend/internal/http/middleware"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AllowedOrigins  []string
	HealthHandler   *handlers.HealthHandler
	CatalogHandler  *handlers.CatalogHandler
	ImportHandler   *handlers.ImportHandler
	AdminMiddleware *middleware.AdminTokenMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Admin-Token"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api/catalog")
	{
		api.GET("/categories", cfg.CatalogHandler.ListCategories)
		api.GET("/categories/:slug/products", cfg.CatalogHandler.ProductsByCategory)
		api.GET("/vehicles", cfg.CatalogHandler.SearchVehicles)
		api.GET("/vehicles/:id/products", cfg.CatalogHandler.ProductsByVehicle)
		api.GET("/products/:reference", cfg.CatalogHandler.ProductByReference)
	}

	admin := router.Group("/admin")
	admin.Use(cfg.AdminMiddleware.RequireAdmin())
	{
		admin.POST("/imports", cfg.ImportHandler.UploadFeed)
		admin.POST("/imports/feeds/:name", cfg.ImportHandler.RunStagedFeed)
		admin.GET("/imports", cfg.ImportHandler.ListRuns)
		admin.GET("/imports/:id", cfg.ImportHandler.GetRun)
	}

	return router
}
