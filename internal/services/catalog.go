package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aitbenali/autoparts-backend/internal/clients/redis"
	"github.com/aitbenali/autoparts-backend/internal/data/repos"
	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

const catalogCachePrefix = "catalog:"

// CatalogService is the read side consumed by the storefront: it only reads
// the normalized tables the ingestion pipeline populates.
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*types.Category, error)
	ProductsByCategorySlug(ctx context.Context, slug string) ([]*types.Product, error)
	SearchVehicles(ctx context.Context, brand, model string) ([]*types.Vehicle, error)
	ProductsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*types.Product, error)
	ProductByReference(ctx context.Context, reference string) (*types.Product, error)
}

type catalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	cats     repos.CategoryRepo
	vehicles repos.VehicleRepo
	products repos.ProductRepo
	links    repos.ProductVehicleRepo
	cache    redis.CacheService
	cacheTTL time.Duration
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cats repos.CategoryRepo,
	vehicles repos.VehicleRepo,
	products repos.ProductRepo,
	links repos.ProductVehicleRepo,
	cache redis.CacheService,
	cacheTTL time.Duration,
) CatalogService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &catalogService{
		db:       db,
		log:      baseLog.With("service", "CatalogService"),
		cats:     cats,
		vehicles: vehicles,
		products: products,
		links:    links,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	key := catalogCachePrefix + "categories"
	var cached []*types.Category
	if s.tryCache(ctx, key, &cached) {
		return cached, nil
	}
	out, err := s.cats.GetAll(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.fillCache(ctx, key, out)
	return out, nil
}

func (s *catalogService) ProductsByCategorySlug(ctx context.Context, slug string) ([]*types.Product, error) {
	key := catalogCachePrefix + "category:" + slug + ":products"
	var cached []*types.Product
	if s.tryCache(ctx, key, &cached) {
		return cached, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	cats, err := s.cats.GetBySlugs(dbc, []string{slug})
	if err != nil {
		return nil, fmt.Errorf("lookup category %q: %w", slug, err)
	}
	if len(cats) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	out, err := s.products.GetByCategoryIDs(dbc, []uuid.UUID{cats[0].ID})
	if err != nil {
		return nil, fmt.Errorf("products by category %q: %w", slug, err)
	}
	s.fillCache(ctx, key, out)
	return out, nil
}

func (s *catalogService) SearchVehicles(ctx context.Context, brand, model string) ([]*types.Vehicle, error) {
	out, err := s.vehicles.Search(dbctx.Context{Ctx: ctx}, brand, model)
	if err != nil {
		return nil, fmt.Errorf("search vehicles: %w", err)
	}
	return out, nil
}

func (s *catalogService) ProductsByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]*types.Product, error) {
	key := catalogCachePrefix + "vehicle:" + vehicleID.String() + ":products"
	var cached []*types.Product
	if s.tryCache(ctx, key, &cached) {
		return cached, nil
	}
	dbc := dbctx.Context{Ctx: ctx}
	links, err := s.links.GetByVehicleIDs(dbc, []uuid.UUID{vehicleID})
	if err != nil {
		return nil, fmt.Errorf("links by vehicle: %w", err)
	}
	productIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		productIDs = append(productIDs, l.ProductID)
	}
	out, err := s.products.GetByIDs(dbc, productIDs)
	if err != nil {
		return nil, fmt.Errorf("products by vehicle: %w", err)
	}
	s.fillCache(ctx, key, out)
	return out, nil
}

func (s *catalogService) ProductByReference(ctx context.Context, reference string) (*types.Product, error) {
	// Uncached: the admin back-office edits price and stock directly and the
	// detail page must reflect that immediately.
	return s.products.GetByReference(dbctx.Context{Ctx: ctx}, reference)
}

func (s *catalogService) tryCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.GetJSON(ctx, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return hit
}

func (s *catalogService) fillCache(ctx context.Context, key string, val any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, val, s.cacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}
