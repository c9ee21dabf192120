package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type ProductVehicleRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.ProductVehicle) (int64, error)
	GetByProductIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.ProductVehicle, error)
	GetByVehicleIDs(dbc dbctx.Context, vehicleIDs []uuid.UUID) ([]*types.ProductVehicle, error)
}

type productVehicleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductVehicleRepo(db *gorm.DB, baseLog *logger.Logger) ProductVehicleRepo {
	return &productVehicleRepo{
		db:  db,
		log: baseLog.With("repo", "ProductVehicleRepo"),
	}
}

func (r *productVehicleRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.ProductVehicle) (int64, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	if len(rows) == 0 {
		return 0, nil
	}
	res := tx.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *productVehicleRepo) GetByProductIDs(dbc dbctx.Context, productIDs []uuid.UUID) ([]*types.ProductVehicle, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.ProductVehicle{}
	if len(productIDs) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("product_id IN ?", productIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productVehicleRepo) GetByVehicleIDs(dbc dbctx.Context, vehicleIDs []uuid.UUID) ([]*types.ProductVehicle, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.ProductVehicle{}
	if len(vehicleIDs) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("vehicle_id IN ?", vehicleIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
