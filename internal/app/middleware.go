package app

import (
	"github.com/aitbenali/autoparts-backend/internal/http/middleware"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type Middleware struct {
	Admin *middleware.AdminTokenMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Admin: middleware.NewAdminTokenMiddleware(log, cfg.AdminToken),
	}
}
