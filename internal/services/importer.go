package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/clients/redis"
	"github.com/aitbenali/autoparts-backend/internal/data/repos"
	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/domain/catalog"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

// ImportService is the single entry point for both trigger paths: a direct
// upload of feed content and a pre-staged feed identifier. Both converge on
// the same coordinator run.
type ImportService interface {
	ImportContent(ctx context.Context, source string, content io.Reader, separator string, baselineYear int) (*types.ImportRun, error)
	ImportStaged(ctx context.Context, name string) (*types.ImportRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*types.ImportRun, error)
	ListRuns(ctx context.Context, limit int) ([]*types.ImportRun, error)
	StagedFeedNames() []string
}

type importService struct {
	db       *gorm.DB
	log      *logger.Logger
	importer *ingestion.Importer
	runs     repos.ImportRunRepo
	feeds    FeedRegistry
	cache    redis.CacheService
}

func NewImportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	importer *ingestion.Importer,
	runs repos.ImportRunRepo,
	feeds FeedRegistry,
	cache redis.CacheService,
) ImportService {
	return &importService{
		db:       db,
		log:      baseLog.With("service", "ImportService"),
		importer: importer,
		runs:     runs,
		feeds:    feeds,
		cache:    cache,
	}
}

func (s *importService) ImportContent(ctx context.Context, source string, content io.Reader, separator string, baselineYear int) (*types.ImportRun, error) {
	return s.run(ctx, source, content, separator, baselineYear)
}

func (s *importService) ImportStaged(ctx context.Context, name string) (*types.ImportRun, error) {
	rc, staged, err := s.feeds.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return s.run(ctx, "staged:"+name, rc, staged.Separator, staged.BaselineYear)
}

func (s *importService) run(ctx context.Context, source string, content io.Reader, separator string, baselineYear int) (*types.ImportRun, error) {
	dbc := dbctx.Context{Ctx: ctx}

	run := &types.ImportRun{
		ID:     uuid.New(),
		Source: source,
		Status: catalog.ImportStatusIdle,
	}
	if _, err := s.runs.Create(dbc, run); err != nil {
		return nil, fmt.Errorf("create import run: %w", err)
	}

	summary, runErr := s.importer.Run(ctx, content, ingestion.Options{
		Source:       source,
		Separator:    separator,
		BaselineYear: baselineYear,
		OnState: func(state ingestion.State) {
			// Best effort: losing a status update does not affect the run.
			if err := s.runs.UpdateStatus(dbc, run.ID, string(state)); err != nil {
				s.log.Warn("import run status update failed", "run_id", run.ID, "state", string(state), "error", err)
			}
		},
	})

	run.RowsParsed = summary.RowsParsed
	run.RowsSkipped = summary.RowsSkipped
	run.RowsFailed = summary.RowsFailed
	run.CategoriesResolved = summary.CategoriesResolved
	run.VehiclesResolved = summary.VehiclesResolved
	run.ProductsCreated = int(summary.ProductsCreated)
	run.LinksCreated = int(summary.LinksCreated)

	if runErr != nil {
		run.Status = catalog.ImportStatusFailed
		run.Error = runErr.Error()
		if err := s.runs.Finish(dbc, run); err != nil {
			s.log.Error("import run finish failed", "run_id", run.ID, "error", err)
		}
		return run, runErr
	}

	run.Status = catalog.ImportStatusDone
	if err := s.runs.Finish(dbc, run); err != nil {
		s.log.Error("import run finish failed", "run_id", run.ID, "error", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePrefix(ctx, catalogCachePrefix); err != nil {
			s.log.Warn("catalog cache invalidation failed", "error", err)
		}
	}
	return run, nil
}

func (s *importService) GetRun(ctx context.Context, id uuid.UUID) (*types.ImportRun, error) {
	return s.runs.GetByID(dbctx.Context{Ctx: ctx}, id)
}

func (s *importService) ListRuns(ctx context.Context, limit int) ([]*types.ImportRun, error) {
	return s.runs.List(dbctx.Context{Ctx: ctx}, limit)
}

func (s *importService) StagedFeedNames() []string {
	return s.feeds.Names()
}
