package resolve

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aitbenali/autoparts-backend/internal/data/repos"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

const (
	defaultChunkSize = 500
	defaultWorkers   = 4
)

type Config struct {
	// ChunkSize bounds how many distinct keys one lookup/create round trip
	// covers. Work is proportional to distinct keys, never to input rows.
	ChunkSize int
	// Workers bounds the fan-out against the store within one phase.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.ChunkSize <= 0 {
		c.ChunkSize = defaultChunkSize
	}
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	return c
}

// Resolver maps batches of natural keys to persistent IDs, creating rows for
// keys not already present. Store-level uniqueness constraints are the
// serialization point across concurrent runs: a create that loses the race
// surfaces as a conflict and is re-resolved by lookup, never treated as fatal.
type Resolver struct {
	log        *logger.Logger
	categories repos.CategoryRepo
	vehicles   repos.VehicleRepo
	products   repos.ProductRepo
	links      repos.ProductVehicleRepo
	cfg        Config
}

func New(
	baseLog *logger.Logger,
	categories repos.CategoryRepo,
	vehicles repos.VehicleRepo,
	products repos.ProductRepo,
	links repos.ProductVehicleRepo,
	cfg Config,
) *Resolver {
	return &Resolver{
		log:        baseLog.With("module", "Resolver"),
		categories: categories,
		vehicles:   vehicles,
		products:   products,
		links:      links,
		cfg:        cfg.withDefaults(),
	}
}

// Stats describes one resolution phase. Resolved counts keys mapped to an ID
// (created or pre-existing), Created counts rows this run inserted, Failed
// counts keys that could not be resolved because of store errors.
type Stats struct {
	Resolved int
	Created  int64
	Failed   int
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Covers wrapped errors that lose type info.
	return strings.Contains(strings.ToLower(err.Error()), "sqlstate 23505")
}

func chunkStrings(keys []string, size int) [][]string {
	var out [][]string
	for len(keys) > size {
		out = append(out, keys[:size])
		keys = keys[size:]
	}
	if len(keys) > 0 {
		out = append(out, keys)
	}
	return out
}
