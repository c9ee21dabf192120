package domain

import (
	"github.com/aitbenali/autoparts-backend/internal/domain/catalog"
)

type Category = catalog.Category
type Vehicle = catalog.Vehicle
type Product = catalog.Product
type ProductVehicle = catalog.ProductVehicle
type ImportRun = catalog.ImportRun
