package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product identity is the manufacturer part reference. Reference, name, brand,
// category and description are derived from the feed on creation; price, stock
// and images belong to the admin back-office and are never touched by a
// re-import.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Reference   string    `gorm:"uniqueIndex;not null;column:reference" json:"reference"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Brand       string    `gorm:"column:brand" json:"brand"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index;column:category_id" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Description string    `gorm:"column:description" json:"description"`

	PriceCents int            `gorm:"column:price_cents;not null;default:0" json:"price_cents"`
	Stock      int            `gorm:"column:stock;not null;default:0" json:"stock"`
	Images     datatypes.JSON `gorm:"column:images" json:"images,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Product) TableName() string { return "product" }
