package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/feed"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/keys"
	"github.com/aitbenali/autoparts-backend/internal/modules/ingestion/resolve"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

// State names the coordinator's phases. Failed is reachable only from a fatal
// precondition; row-level errors accumulate in the summary while the run
// keeps progressing toward Done.
type State string

const (
	StateIdle                      State = "idle"
	StateParsing                   State = "parsing"
	StateResolvingCategories       State = "resolving_categories"
	StateResolvingVehicles         State = "resolving_vehicles"
	StateResolvingProductsAndLinks State = "resolving_products_and_links"
	StateDone                      State = "done"
	StateFailed                    State = "failed"
)

// ErrEmptyFeed means the input carried no data lines at all. This is the one
// row-independent failure that aborts a run.
var ErrEmptyFeed = errors.New("feed has no data lines")

// Summary is what the admin caller receives, even on a mostly-failed run, so
// partial success stays visible and actionable.
type Summary struct {
	RowsParsed         int   `json:"rows_parsed"`
	RowsSkipped        int   `json:"rows_skipped"`
	RowsFailed         int   `json:"rows_failed"`
	CategoriesResolved int   `json:"categories_resolved"`
	VehiclesResolved   int   `json:"vehicles_resolved"`
	ProductsCreated    int64 `json:"products_created"`
	LinksCreated       int64 `json:"links_created"`
}

type Options struct {
	Source       string
	Separator    string
	BaselineYear int
	// OnState is invoked on every phase transition, if set. The import
	// service uses it to keep the persisted run row current.
	OnState func(State)
}

// Importer orchestrates parser, key synthesis and resolvers in dependency
// order: categories and vehicles before products, products before links. All
// per-run caches (distinct key sets, the link set) live on the stack of Run
// and are discarded when it returns.
type Importer struct {
	log      *logger.Logger
	resolver *resolve.Resolver
}

func New(baseLog *logger.Logger, resolver *resolve.Resolver) *Importer {
	return &Importer{
		log:      baseLog.With("module", "Importer"),
		resolver: resolver,
	}
}

type productAgg struct {
	name         string
	brand        string
	categorySlug string
	labels       []string
	seenVehicles map[keys.VehicleKey]bool
}

type pairKey struct {
	ref     string
	vehicle keys.VehicleKey
}

func (imp *Importer) Run(ctx context.Context, input io.Reader, opts Options) (Summary, error) {
	setState := func(s State) {
		imp.log.Info("import state", "state", string(s), "source", opts.Source)
		if opts.OnState != nil {
			opts.OnState(s)
		}
	}

	var sum Summary
	setState(StateParsing)

	reader := feed.NewReader(input, feed.Options{
		Separator:    opts.Separator,
		BaselineYear: opts.BaselineYear,
	})

	catNames := map[string]string{}
	vehSeeds := map[keys.VehicleKey]resolve.VehicleSeed{}
	prodAggs := map[string]*productAgg{}
	pairSet := map[pairKey]bool{}
	var pairOrder []pairKey
	var unsluggable int

	for {
		row, ok := reader.Next()
		if !ok {
			break
		}
		rk := keys.FromRow(row)
		if rk.CategorySlug == "" {
			// The category name had no alphanumeric content to slug, so the
			// row has no category identity to resolve against.
			unsluggable++
			continue
		}

		if _, seen := catNames[rk.CategorySlug]; !seen {
			catNames[rk.CategorySlug] = strings.TrimSpace(row.CategoryName)
		}
		if _, seen := vehSeeds[rk.Vehicle]; !seen {
			vehSeeds[rk.Vehicle] = resolve.VehicleSeed{
				Displacement: row.Displacement,
				EngineCode:   row.EngineCode,
				Power:        row.Power,
			}
		}

		agg, seen := prodAggs[rk.ProductRef]
		if !seen {
			agg = &productAgg{
				name:         strings.TrimSpace(row.PartName),
				brand:        strings.TrimSpace(row.Brand),
				categorySlug: rk.CategorySlug,
				seenVehicles: map[keys.VehicleKey]bool{},
			}
			prodAggs[rk.ProductRef] = agg
		}
		if !agg.seenVehicles[rk.Vehicle] {
			agg.seenVehicles[rk.Vehicle] = true
			agg.labels = append(agg.labels, rk.Vehicle.Label())
		}

		pk := pairKey{ref: rk.ProductRef, vehicle: rk.Vehicle}
		if !pairSet[pk] {
			pairSet[pk] = true
			pairOrder = append(pairOrder, pk)
		}
	}

	sum.RowsParsed = reader.Parsed() - unsluggable
	sum.RowsSkipped = reader.Skipped() + unsluggable

	// A scan failure means the tail of the feed was never seen. Resolving the
	// partial prefix would report a clean run over a truncated import, so this
	// is fatal like any other unreadable input.
	if err := reader.Err(); err != nil {
		setState(StateFailed)
		return sum, fmt.Errorf("reading feed: %w", err)
	}

	if sum.RowsParsed == 0 && sum.RowsSkipped == 0 {
		setState(StateFailed)
		return sum, ErrEmptyFeed
	}
	if sum.RowsParsed == 0 {
		// Every data line was malformed. Not fatal: the caller sees the
		// skipped count and can fix the feed.
		setState(StateDone)
		return sum, nil
	}

	setState(StateResolvingCategories)
	catIDs, catStats := imp.resolver.Categories(ctx, catNames)
	sum.CategoriesResolved = catStats.Resolved
	if catStats.Resolved == 0 && catStats.Failed > 0 {
		// First store contact failed wholesale: nothing was resolved before
		// any progress was made, so surface a hard failure.
		setState(StateFailed)
		return sum, fmt.Errorf("category resolution made no progress (%d keys failed)", catStats.Failed)
	}

	setState(StateResolvingVehicles)
	vehIDs, vehStats := imp.resolver.Vehicles(ctx, vehSeeds)
	sum.VehiclesResolved = vehStats.Resolved
	sum.RowsFailed += vehStats.Failed + catStats.Failed

	setState(StateResolvingProductsAndLinks)
	prodSeeds := make(map[string]resolve.ProductSeed, len(prodAggs))
	for ref, agg := range prodAggs {
		catID, ok := catIDs[agg.categorySlug]
		if !ok {
			sum.RowsFailed++
			continue
		}
		prodSeeds[ref] = resolve.ProductSeed{
			Name:        agg.name,
			Brand:       agg.brand,
			CategoryID:  catID,
			Description: describeProduct(agg.name, agg.labels),
		}
	}
	prodIDs, prodStats := imp.resolver.Products(ctx, prodSeeds)
	sum.ProductsCreated = prodStats.Created
	sum.RowsFailed += prodStats.Failed

	// A link is only written once both sides of the pair have resolved.
	linkPairs := make([]resolve.LinkPair, 0, len(pairOrder))
	for _, pk := range pairOrder {
		productID, okP := prodIDs[pk.ref]
		vehicleID, okV := vehIDs[pk.vehicle]
		if !okP || !okV {
			sum.RowsFailed++
			continue
		}
		linkPairs = append(linkPairs, resolve.LinkPair{ProductID: productID, VehicleID: vehicleID})
	}
	linkStats := imp.resolver.Links(ctx, linkPairs)
	sum.LinksCreated = linkStats.Created
	sum.RowsFailed += linkStats.Failed

	setState(StateDone)
	imp.log.Info("import finished",
		"source", opts.Source,
		"rows_parsed", sum.RowsParsed,
		"rows_skipped", sum.RowsSkipped,
		"rows_failed", sum.RowsFailed,
		"categories_resolved", sum.CategoriesResolved,
		"vehicles_resolved", sum.VehiclesResolved,
		"products_created", sum.ProductsCreated,
		"links_created", sum.LinksCreated,
	)
	return sum, nil
}

const maxDescribedVehicles = 12

func describeProduct(name string, labels []string) string {
	if len(labels) == 0 {
		return name
	}
	shown := labels
	var more int
	if len(shown) > maxDescribedVehicles {
		more = len(shown) - maxDescribedVehicles
		shown = shown[:maxDescribedVehicles]
	}
	desc := fmt.Sprintf("%s. Compatible with: %s", name, strings.Join(shown, ", "))
	if more > 0 {
		desc += fmt.Sprintf(" and %d more", more)
	}
	return desc
}
