package app

import (
	"github.com/aitbenali/autoparts-backend/internal/http/handlers"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Catalog *handlers.CatalogHandler
	Import  *handlers.ImportHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  handlers.NewHealthHandler(),
		Catalog: handlers.NewCatalogHandler(log, serviceset.Catalog),
		Import:  handlers.NewImportHandler(log, serviceset.Import),
	}
}
