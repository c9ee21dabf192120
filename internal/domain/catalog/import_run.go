package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Import run statuses follow the coordinator's phases. Failed is only
// reachable from a fatal precondition (no input, store unreachable before any
// progress); row-level errors accumulate in the counters instead.
const (
	ImportStatusIdle              = "idle"
	ImportStatusParsing           = "parsing"
	ImportStatusResolvingCats     = "resolving_categories"
	ImportStatusResolvingVehicles = "resolving_vehicles"
	ImportStatusResolvingProducts = "resolving_products_and_links"
	ImportStatusDone              = "done"
	ImportStatusFailed            = "failed"
)

// ImportRun records one invocation of the fitment ingestion pipeline, with
// the summary counters persisted for the admin history view.
type ImportRun struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Source string    `gorm:"not null;column:source" json:"source"`
	Status string    `gorm:"not null;column:status;default:'idle'" json:"status"`

	RowsParsed         int `gorm:"column:rows_parsed;not null;default:0" json:"rows_parsed"`
	RowsSkipped        int `gorm:"column:rows_skipped;not null;default:0" json:"rows_skipped"`
	RowsFailed         int `gorm:"column:rows_failed;not null;default:0" json:"rows_failed"`
	CategoriesResolved int `gorm:"column:categories_resolved;not null;default:0" json:"categories_resolved"`
	VehiclesResolved   int `gorm:"column:vehicles_resolved;not null;default:0" json:"vehicles_resolved"`
	ProductsCreated    int `gorm:"column:products_created;not null;default:0" json:"products_created"`
	LinksCreated       int `gorm:"column:links_created;not null;default:0" json:"links_created"`

	Error      string     `gorm:"column:error" json:"error,omitempty"`
	StartedAt  time.Time  `gorm:"not null;default:now()" json:"started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
}

func (ImportRun) TableName() string { return "import_run" }
