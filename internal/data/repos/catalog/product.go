package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type ProductRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Product) (int64, error)
	GetByReferences(dbc dbctx.Context, references []string) ([]*types.Product, error)
	GetByReference(dbc dbctx.Context, reference string) (*types.Product, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Product, error)
	GetByCategoryIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Product, error)
}

type productRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return &productRepo{
		db:  db,
		log: baseLog.With("repo", "ProductRepo"),
	}
}

// CreateIgnoreDuplicates only inserts rows whose reference is not already
// present; conflicting rows keep their admin-owned fields untouched.
func (r *productRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Product) (int64, error) {
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

func (r *productRepo) GetByReferences(dbc dbctx.Context, references []string) ([]*types.Product, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Product{}
	if len(references) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("reference IN ?", references).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) GetByReference(dbc dbctx.Context, reference string) (*types.Product, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	var p types.Product
	if err := tx.WithContext(dbc.Ctx).
		Where("reference = ?", reference).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Product, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Product{}
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

func (r *productRepo) GetByCategoryIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Product, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Product{}
	if len(categoryIDs) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("category_id IN ?", categoryIDs).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
