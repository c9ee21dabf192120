package app

import (
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/data/repos"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type Repos struct {
	Category       repos.CategoryRepo
	Vehicle        repos.VehicleRepo
	Product        repos.ProductRepo
	ProductVehicle repos.ProductVehicleRepo
	ImportRun      repos.ImportRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Category:       repos.NewCategoryRepo(db, log),
		Vehicle:        repos.NewVehicleRepo(db, log),
		Product:        repos.NewProductRepo(db, log),
		ProductVehicle: repos.NewProductVehicleRepo(db, log),
		ImportRun:      repos.NewImportRunRepo(db, log),
	}
}
