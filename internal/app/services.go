package app

import (
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/clients/redis"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/resolve"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
	"github.com/aitbenali/autoparts-backend/internal/services"
)

type Services struct {
	Catalog services.CatalogService
	Import  services.ImportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, cache redis.CacheService) (Services, error) {
	log.Info("Wiring services...")

	feeds, err := services.NewFeedRegistry(cfg.FeedRegistry, log)
	if err != nil {
		return Services{}, err
	}

	resolver := resolve.New(
		log,
		reposet.Category,
		reposet.Vehicle,
		reposet.Product,
		reposet.ProductVehicle,
		resolve.Config{ChunkSize: cfg.ImportChunkSize, Workers: cfg.ImportWorkers},
	)
	importer := ingestion.New(log, resolver)

	return Services{
		Catalog: services.NewCatalogService(
			db, log,
			reposet.Category,
			reposet.Vehicle,
			reposet.Product,
			reposet.ProductVehicle,
			cache,
			cfg.CatalogCacheTTL,
		),
		Import: services.NewImportService(db, log, importer, reposet.ImportRun, feeds, cache),
	}, nil
}
