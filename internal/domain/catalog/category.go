package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is long-lived reference data shared with the storefront filters
// and detail pages. The ingestion pipeline creates rows on first sighting of
// a new slug and never deletes or rewrites them.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"not null;column:name" json:"name"`
	Slug string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Category) TableName() string { return "category" }
