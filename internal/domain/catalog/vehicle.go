package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle identity is the (brand, model, year, engine_signature) tuple. Year
// is the synthesized midpoint of the feed's fitment range, so two ranges with
// the same midpoint collapse onto one row. Displacement, engine code and
// power are display attributes carried from the first row sighted.
type Vehicle struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Brand           string    `gorm:"not null;column:brand;uniqueIndex:idx_vehicle_identity" json:"brand"`
	Model           string    `gorm:"not null;column:model;uniqueIndex:idx_vehicle_identity" json:"model"`
	Year            int       `gorm:"not null;column:year;uniqueIndex:idx_vehicle_identity" json:"year"`
	EngineSignature string    `gorm:"not null;column:engine_signature;uniqueIndex:idx_vehicle_identity" json:"engine_signature"`
	Displacement    string    `gorm:"column:displacement" json:"displacement"`
	EngineCode      string    `gorm:"column:engine_code" json:"engine_code"`
	Power           string    `gorm:"column:power" json:"power"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Vehicle) TableName() string { return "vehicle" }
