package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/aitbenali/autoparts-backend/internal/data/repos/testutil"
	types "github.com/aitbenali/autoparts-backend/internal/domain"
)

func TestProductVehicleRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Dbc(t, db)

	repo := NewProductVehicleRepo(db, testutil.Logger(t))

	productA := uuid.New()
	productB := uuid.New()
	vehicleA := uuid.New()
	vehicleB := uuid.New()

	created, err := repo.CreateIgnoreDuplicates(dbc, []*types.ProductVehicle{
		{ID: uuid.New(), ProductID: productA, VehicleID: vehicleA},
		{ID: uuid.New(), ProductID: productA, VehicleID: vehicleB},
		{ID: uuid.New(), ProductID: productB, VehicleID: vehicleA},
	})
	if err != nil {
		t.Fatalf("CreateIgnoreDuplicates: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 created, got %d", created)
	}

	// Re-inserting an existing pair is a no-op.
	created, err = repo.CreateIgnoreDuplicates(dbc, []*types.ProductVehicle{
		{ID: uuid.New(), ProductID: productA, VehicleID: vehicleA},
	})
	if err != nil {
		t.Fatalf("CreateIgnoreDuplicates (conflict): %v", err)
	}
	if created != 0 {
		t.Fatalf("pair conflict must create nothing, got %d", created)
	}

	byProduct, err := repo.GetByProductIDs(dbc, []uuid.UUID{productA})
	if err != nil {
		t.Fatalf("GetByProductIDs: %v", err)
	}
	if len(byProduct) != 2 {
		t.Fatalf("GetByProductIDs: expected 2 links, got %d", len(byProduct))
	}

	byVehicle, err := repo.GetByVehicleIDs(dbc, []uuid.UUID{vehicleA})
	if err != nil {
		t.Fatalf("GetByVehicleIDs: %v", err)
	}
	if len(byVehicle) != 2 {
		t.Fatalf("GetByVehicleIDs: expected 2 links, got %d", len(byVehicle))
	}
}
