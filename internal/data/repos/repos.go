package repos

import (
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/data/repos/catalog"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type CategoryRepo = catalog.CategoryRepo
type VehicleRepo = catalog.VehicleRepo
type ProductRepo = catalog.ProductRepo
type ProductVehicleRepo = catalog.ProductVehicleRepo
type ImportRunRepo = catalog.ImportRunRepo

type VehicleIdentity = catalog.VehicleIdentity

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}
func NewVehicleRepo(db *gorm.DB, baseLog *logger.Logger) VehicleRepo {
	return catalog.NewVehicleRepo(db, baseLog)
}
func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}
func NewProductVehicleRepo(db *gorm.DB, baseLog *logger.Logger) ProductVehicleRepo {
	return catalog.NewProductVehicleRepo(db, baseLog)
}
func NewImportRunRepo(db *gorm.DB, baseLog *logger.Logger) ImportRunRepo {
	return catalog.NewImportRunRepo(db, baseLog)
}
