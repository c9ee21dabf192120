package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/aitbenali/autoparts-backend/internal/data/repos/testutil"
	types "github.com/aitbenali/autoparts-backend/internal/domain"
)

func TestVehicleRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := testutil.Dbc(t, db)

	repo := NewVehicleRepo(db, testutil.Logger(t))

	rows := []*types.Vehicle{
		{ID: uuid.New(), Brand: "Toyota", Model: "Corolla", Year: 2012, EngineSignature: "1.6-1zr", Displacement: "1.6", EngineCode: "1ZR", Power: "97"},
		{ID: uuid.New(), Brand: "Peugeot", Model: "308", Year: 2016, EngineSignature: "1.6-ep6", Displacement: "1.6", EngineCode: "EP6", Power: "120"},
	}
	created, err := repo.CreateIgnoreDuplicates(dbc, rows)
	if err != nil {
		t.Fatalf("CreateIgnoreDuplicates: %v", err)
	}
	if created != 2 {
		t.Fatalf("expected 2 created, got %d", created)
	}

	// Same identity tuple, different display attributes: nothing new.
	created, err = repo.CreateIgnoreDuplicates(dbc, []*types.Vehicle{
		{ID: uuid.New(), Brand: "Toyota", Model: "Corolla", Year: 2012, EngineSignature: "1.6-1zr", Power: "96"},
	})
	if err != nil {
		t.Fatalf("CreateIgnoreDuplicates (conflict): %v", err)
	}
	if created != 0 {
		t.Fatalf("identity conflict must create nothing, got %d", created)
	}

	got, err := repo.GetByIdentities(dbc, []VehicleIdentity{
		{Brand: "Toyota", Model: "Corolla", Year: 2012, EngineSignature: "1.6-1zr"},
		{Brand: "Peugeot", Model: "308", Year: 2016, EngineSignature: "1.6-ep6"},
		{Brand: "Renault", Model: "Clio", Year: 2018, EngineSignature: "0.9-h4b"},
	})
	if err != nil {
		t.Fatalf("GetByIdentities: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetByIdentities: expected 2 rows, got %d", len(got))
	}
	for _, v := range got {
		if v.Brand == "Toyota" && v.Power != "97" {
			t.Fatalf("conflicting create must not rewrite display attributes, got power %q", v.Power)
		}
	}

	byBrand, err := repo.Search(dbc, "Toyota", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(byBrand) != 1 || byBrand[0].Model != "Corolla" {
		t.Fatalf("Search by brand: unexpected result %+v", byBrand)
	}

	byModel, err := repo.Search(dbc, "", "308")
	if err != nil {
		t.Fatalf("Search by model: %v", err)
	}
	if len(byModel) != 1 || byModel[0].Brand != "Peugeot" {
		t.Fatalf("Search by model: unexpected result %+v", byModel)
	}
}
