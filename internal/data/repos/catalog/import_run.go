package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type ImportRunRepo interface {
	Create(dbc dbctx.Context, run *types.ImportRun) (*types.ImportRun, error)
	UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error
	Finish(dbc dbctx.Context, run *types.ImportRun) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ImportRun, error)
	List(dbc dbctx.Context, limit int) ([]*types.ImportRun, error)
}

type importRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImportRunRepo(db *gorm.DB, baseLog *logger.Logger) ImportRunRepo {
	return &importRunRepo{
		db:  db,
		log: baseLog.With("repo", "ImportRunRepo"),
	}
}

func (r *importRunRepo) Create(dbc dbctx.Context, run *types.ImportRun) (*types.ImportRun, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	if err := tx.WithContext(dbc.Ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *importRunRepo) UpdateStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(dbc.Ctx).
		Model(&types.ImportRun{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Finish writes the terminal status and all summary counters in one update.
func (r *importRunRepo) Finish(dbc dbctx.Context, run *types.ImportRun) error {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	now := time.Now().UTC()
	run.FinishedAt = &now
	return tx.WithContext(dbc.Ctx).
		Model(&types.ImportRun{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"status":              run.Status,
			"rows_parsed":         run.RowsParsed,
			"rows_skipped":        run.RowsSkipped,
			"rows_failed":         run.RowsFailed,
			"categories_resolved": run.CategoriesResolved,
			"vehicles_resolved":   run.VehiclesResolved,
			"products_created":    run.ProductsCreated,
			"links_created":       run.LinksCreated,
			"error":               run.Error,
			"finished_at":         run.FinishedAt,
		}).Error
}

func (r *importRunRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ImportRun, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	var run types.ImportRun
	if err := tx.WithContext(dbc.Ctx).
		Where("id = ?", id).
		First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *importRunRepo) List(dbc dbctx.Context, limit int) ([]*types.ImportRun, error) {
	tx := dbc.Tx
	if tx == nil {
		tx = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	out := []*types.ImportRun{}
	if err := tx.WithContext(dbc.Ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
