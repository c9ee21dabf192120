package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

// VehicleIdentity is the natural key of a vehicle row.
type VehicleIdentity struct {
	Brand           string
	Model           string
	Year            int
	EngineSignature string
}

type VehicleRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Vehicle) (int64, error)
	GetByIdentities(dbc dbctx.Context, identities []VehicleIdentity) ([]*types.Vehicle, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Vehicle, error)
	Search(dbc dbctx.Context, brand, model string) ([]*types.Vehicle, error)
}

type vehicleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVehicleRepo(db *gorm.DB, baseLog *logger.Logger) VehicleRepo {
	return &vehicleRepo{
		db:  db,
		log: baseLog.With("repo", "VehicleRepo"),
	}
}

func (r *vehicleRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Vehicle) (int64, error) {
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

func (r *vehicleRepo) GetByIdentities(dbc dbctx.Context, identities []VehicleIdentity) ([]*types.Vehicle, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Vehicle{}
	if len(identities) == 0 {
		return out, nil
	}
	tuples := make([][]interface{}, 0, len(identities))
	for _, id := range identities {
		tuples = append(tuples, []interface{}{id.Brand, id.Model, id.Year, id.EngineSignature})
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("(brand, model, year, engine_signature) IN ?", tuples).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *vehicleRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Vehicle, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Vehicle{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *vehicleRepo) Search(dbc dbctx.Context, brand, model string) ([]*types.Vehicle, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	q := tx.WithContext(dbc.Ctx)
	if brand != "" {
		q = q.Where("brand = ?", brand)
	}
	if model != "" {
		q = q.Where("model = ?", model)
	}
	out := []*types.Vehicle{}
	if err := q.Order("brand ASC, model ASC, year ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
