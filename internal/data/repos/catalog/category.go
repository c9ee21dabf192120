package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type CategoryRepo interface {
	CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Category) (int64, error)
	GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Category, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Category, error)
	GetAll(dbc dbctx.Context) ([]*types.Category, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{
		db:  db,
		log: baseLog.With("repo", "CategoryRepo"),
	}
}

func (r *categoryRepo) CreateIgnoreDuplicates(dbc dbctx.Context, rows []*types.Category) (int64, error) {
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

func (r *categoryRepo) GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Category, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Category{}
	if len(slugs) == 0 {
		return out, nil
	}
	if err := tx.WithContext(dbc.Ctx).
		Where("slug IN ?", slugs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Category, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Category{}
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

func (r *categoryRepo) GetAll(dbc dbctx.Context) ([]*types.Category, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	out := []*types.Category{}
	if err := tx.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
