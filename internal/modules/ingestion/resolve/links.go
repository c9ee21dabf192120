package resolve

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/aitbenali/autoparts-backend/internal/domain"
	"github.com/aitbenali/autoparts-backend/internal/platform/dbctx"
)

// LinkPair is one resolved product-vehicle compatibility to persist.
type LinkPair struct {
	ProductID uuid.UUID
	VehicleID uuid.UUID
}

// Links ensures exactly one link row exists per pair. The caller has already
// deduplicated pairs in memory for the current run; the unique constraint
// absorbs duplicates left over from earlier runs, so re-importing the same
// fitment never duplicates the link.
func (r *Resolver) Links(ctx context.Context, pairs []LinkPair) Stats {
	var mu sync.Mutex
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, chunk := range chunkPairs(pairs, r.cfg.ChunkSize) {
		chunk := chunk
		g.Go(func() error {
			dbc := dbctx.Context{Ctx: gctx}
			rows := make([]*types.ProductVehicle, 0, len(chunk))
			for _, p := range chunk {
				rows = append(rows, &types.ProductVehicle{
					ID:        uuid.New(),
					ProductID: p.ProductID,
					VehicleID: p.VehicleID,
				})
			}
			created, err := r.links.CreateIgnoreDuplicates(dbc, rows)
			if err != nil && !isUniqueViolation(err) {
				r.log.Warn("link create failed, dropping chunk", "pairs", len(chunk), "error", err)
				mu.Lock()
				stats.Failed += len(chunk)
				mu.Unlock()
				return nil
			}
			mu.Lock()
			stats.Created += created
			stats.Resolved += len(chunk)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return stats
}

func chunkPairs(pairs []LinkPair, size int) [][]LinkPair {
	var out [][]LinkPair
	for len(pairs) > size {
		out = append(out, pairs[:size])
		pairs = pairs[size:]
	}
	if len(pairs) > 0 {
		out = append(out, pairs)
	}
	return out
}
