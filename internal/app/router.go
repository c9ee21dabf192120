package app

import (
	"github.com/gin-gonic/gin"

	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
	"github.com/aitbenali/autoparts-backend/internal/server"
)

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AllowedOrigins:  cfg.AllowedOrigins,
		HealthHandler:   handlerset.Health,
		CatalogHandler:  handlerset.Catalog,
		ImportHandler:   handlerset.Import,
		AdminMiddleware: middlewareset.Admin,
	})
}
