package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ProductVehicle is one declared compatibility between a part and a vehicle.
// Pure relation, unique per (product_id, vehicle_id) pair.
type ProductVehicle struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;column:product_id;uniqueIndex:idx_product_vehicle" json:"product_id"`
	VehicleID uuid.UUID `gorm:"type:uuid;not null;column:vehicle_id;uniqueIndex:idx_product_vehicle" json:"vehicle_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ProductVehicle) TableName() string { return "product_vehicle" }
