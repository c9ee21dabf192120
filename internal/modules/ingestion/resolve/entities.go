package resolve

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aitbenali/autoparts-backend/internal/data/repos"
	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/keys"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
)

// Categories resolves a distinct slug -> display-name set to persistent IDs.
// Existing slugs win: the stored name is never rewritten on re-import.
func (r *Resolver) Categories(ctx context.Context, names map[string]string) (map[string]uuid.UUID, Stats) {
	slugs := make([]string, 0, len(names))
	for slug := range names {
		slugs = append(slugs, slug)
	}

	ids := make(map[string]uuid.UUID, len(slugs))
	var mu sync.Mutex
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, chunk := range chunkStrings(slugs, r.cfg.ChunkSize) {
		chunk := chunk
		g.Go(func() error {
			dbc := dbctx.Context{Ctx: gctx}

			existing, err := r.categories.GetBySlugs(dbc, chunk)
			if err != nil {
				r.log.Warn("category lookup failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}
			known := make(map[string]uuid.UUID, len(existing))
			for _, c := range existing {
				known[c.Slug] = c.ID
			}

			missing := make([]*types.Category, 0)
			for _, slug := range chunk {
				if _, ok := known[slug]; ok {
					continue
				}
				missing = append(missing, &types.Category{
					ID:   uuid.New(),
					Name: names[slug],
					Slug: slug,
				})
			}

			created, err := r.categories.CreateIgnoreDuplicates(dbc, missing)
			if err != nil && !isUniqueViolation(err) {
				r.log.Warn("category create failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			// Re-fetch the whole chunk so conflicting creates resolve to the
			// winner's ID.
			rows, err := r.categories.GetBySlugs(dbc, chunk)
			if err != nil {
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			stats.Created += created
			for _, c := range rows {
				ids[c.Slug] = c.ID
				stats.Resolved++
			}
			stats.Failed += len(chunk) - len(rows)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return ids, stats
}

// Vehicles resolves distinct vehicle identity tuples to persistent IDs. The
// first-sighted row supplies the display attributes of a new vehicle.
func (r *Resolver) Vehicles(ctx context.Context, seeds map[keys.VehicleKey]VehicleSeed) (map[keys.VehicleKey]uuid.UUID, Stats) {
	distinct := make([]keys.VehicleKey, 0, len(seeds))
	for k := range seeds {
		distinct = append(distinct, k)
	}

	ids := make(map[keys.VehicleKey]uuid.UUID, len(distinct))
	var mu sync.Mutex
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, chunk := range chunkVehicleKeys(distinct, r.cfg.ChunkSize) {
		chunk := chunk
		g.Go(func() error {
			dbc := dbctx.Context{Ctx: gctx}
			identities := make([]repos.VehicleIdentity, 0, len(chunk))
			for _, k := range chunk {
				identities = append(identities, repos.VehicleIdentity{
					Brand:           k.Brand,
					Model:           k.Model,
					Year:            k.Year,
					EngineSignature: k.EngineSignature,
				})
			}

			existing, err := r.vehicles.GetByIdentities(dbc, identities)
			if err != nil {
				r.log.Warn("vehicle lookup failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}
			known := make(map[keys.VehicleKey]uuid.UUID, len(existing))
			for _, v := range existing {
				known[vehicleKeyOf(v)] = v.ID
			}

			missing := make([]*types.Vehicle, 0)
			for _, k := range chunk {
				if _, ok := known[k]; ok {
					continue
				}
				seed := seeds[k]
				missing = append(missing, &types.Vehicle{
					ID:              uuid.New(),
					Brand:           k.Brand,
					Model:           k.Model,
					Year:            k.Year,
					EngineSignature: k.EngineSignature,
					Displacement:    seed.Displacement,
					EngineCode:      seed.EngineCode,
					Power:           seed.Power,
				})
			}

			created, err := r.vehicles.CreateIgnoreDuplicates(dbc, missing)
			if err != nil && !isUniqueViolation(err) {
				r.log.Warn("vehicle create failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			rows, err := r.vehicles.GetByIdentities(dbc, identities)
			if err != nil {
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			stats.Created += created
			for _, v := range rows {
				ids[vehicleKeyOf(v)] = v.ID
				stats.Resolved++
			}
			stats.Failed += len(chunk) - len(rows)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return ids, stats
}

// Products resolves distinct part references to persistent IDs. Conflicting
// references are left exactly as stored: feed-derived fields are only written
// on first creation, admin-owned fields never.
func (r *Resolver) Products(ctx context.Context, seeds map[string]ProductSeed) (map[string]uuid.UUID, Stats) {
	refs := make([]string, 0, len(seeds))
	for ref := range seeds {
		refs = append(refs, ref)
	}

	ids := make(map[string]uuid.UUID, len(refs))
	var mu sync.Mutex
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, chunk := range chunkStrings(refs, r.cfg.ChunkSize) {
		chunk := chunk
		g.Go(func() error {
			dbc := dbctx.Context{Ctx: gctx}

			existing, err := r.products.GetByReferences(dbc, chunk)
			if err != nil {
				r.log.Warn("product lookup failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}
			known := make(map[string]uuid.UUID, len(existing))
			for _, p := range existing {
				known[p.Reference] = p.ID
			}

			missing := make([]*types.Product, 0)
			for _, ref := range chunk {
				if _, ok := known[ref]; ok {
					continue
				}
				seed := seeds[ref]
				missing = append(missing, &types.Product{
					ID:          uuid.New(),
					Reference:   ref,
					Name:        seed.Name,
					Brand:       seed.Brand,
					CategoryID:  seed.CategoryID,
					Description: seed.Description,
				})
			}

			created, err := r.products.CreateIgnoreDuplicates(dbc, missing)
			if err != nil && !isUniqueViolation(err) {
				r.log.Warn("product create failed, dropping chunk", "keys", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			rows, err := r.products.GetByReferences(dbc, chunk)
			if err != nil {
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			stats.Created += created
			for _, p := range rows {
				ids[p.Reference] = p.ID
				stats.Resolved++
			}
			stats.Failed += len(chunk) - len(rows)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return ids, stats
}

// VehicleSeed carries the display attributes of the first row that sighted a
// new vehicle identity.
type VehicleSeed struct {
	Displacement string
	EngineCode   string
	Power        string
}

// ProductSeed carries the feed-derived attributes written when a reference is
// first created.
type ProductSeed struct {
	Name        string
	Brand       string
	CategoryID  uuid.UUID
	Description string
}

func vehicleKeyOf(v *types.Vehicle) keys.VehicleKey {
	return keys.VehicleKey{
		Brand:           v.Brand,
		Model:           v.Model,
		Year:            v.Year,
		EngineSignature: v.EngineSignature,
	}
}

func chunkVehicleKeys(ks []keys.VehicleKey, size int) [][]keys.VehicleKey {
	var out [][]keys.VehicleKey
	for len(ks) > size {
		out = append(out, ks[:size])
		ks = ks[size:]
	}
	if len(ks) > 0 {
		out = append(out, ks)
	}
	return out
}
