package commands_test

import (
	"context"
	"testing"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
)

func TestCreateProperty_Success(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)

	h := commands.NewCreatePropertyHandler(db, nil)
	res := h.Handle(ctx, commands.CreatePropertyCommand{
		PropertyNumber: "PN-1001",
		Title:          "Seafront villa",
		Price:          1200000,
		CategoryID:     category.ID,
		OwnerID:        owner.ID,
	})

	if res.IsFailed() {
		t.Fatalf("create failed: %+v", res.Errors[0])
	}

	prop := fetchProperty(t, db, res.Value)
	if prop.Status != models.PropertyStatusAvailable {
		t.Errorf("Status = %q, new listings start available", prop.Status)
	}
	if prop.OwnerID != owner.ID {
		t.Errorf("OwnerID = %s, want %s", prop.OwnerID, owner.ID)
	}
}

func TestCreateProperty_DuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)

	h := commands.NewCreatePropertyHandler(db, nil)
	cmd := commands.CreatePropertyCommand{
		PropertyNumber: "PN-2002",
		Title:          "First",
		Price:          100000,
		CategoryID:     category.ID,
		OwnerID:        owner.ID,
	}
	if res := h.Handle(ctx, cmd); res.IsFailed() {
		t.Fatalf("first create failed: %+v", res.Errors[0])
	}

	cmd.Title = "Second"
	res := h.Handle(ctx, cmd)
	if !res.IsFailed() {
		t.Fatal("duplicate property number accepted")
	}
	if !hasErrorCode(res.Errors, "PropertyNumberTaken") {
		t.Errorf("missing PropertyNumberTaken, got %+v", res.Errors)
	}
}

func TestCreatePropertyValidator_UnknownCategory(t *testing.T) {
	db := newTestDB(t)
	owner := seedCustomer(t, db, "owner")

	v := commands.NewCreatePropertyValidator(db)
	errs := v.Validate(context.Background(), commands.CreatePropertyCommand{
		PropertyNumber: "PN-3003",
		Title:          "No such category",
		Price:          100,
		CategoryID:     "00000000-0000-4000-8000-000000000000",
		OwnerID:        owner.ID,
	})

	if len(errs) == 0 {
		t.Fatal("unknown category passed validation")
	}
	if !hasErrorCode(errs, "CategoryNotFound") {
		t.Errorf("missing CategoryNotFound, got %+v", errs)
	}
}

func TestChangePropertyStatus_MaintenanceRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	h := commands.NewChangePropertyStatusHandler(db, nil)

	res := h.Handle(ctx, commands.ChangePropertyStatusCommand{ID: prop.ID, Event: models.EventMaintain})
	if res.IsFailed() {
		t.Fatalf("maintain failed: %+v", res.Errors[0])
	}
	if got := fetchProperty(t, db, prop.ID).Status; got != models.PropertyStatusUnderMaintenance {
		t.Fatalf("Status = %q, want under_maintenance", got)
	}

	res = h.Handle(ctx, commands.ChangePropertyStatusCommand{ID: prop.ID, Event: models.EventRestore})
	if res.IsFailed() {
		t.Fatalf("restore failed: %+v", res.Errors[0])
	}
	if got := fetchProperty(t, db, prop.ID).Status; got != models.PropertyStatusAvailable {
		t.Errorf("Status = %q, want available", got)
	}
}

func TestChangePropertyStatus_InvalidTransition(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	// An available property has nothing to release.
	h := commands.NewChangePropertyStatusHandler(db, nil)
	res := h.Handle(ctx, commands.ChangePropertyStatusCommand{ID: prop.ID, Event: models.EventRelease})

	if !res.IsFailed() {
		t.Fatal("invalid transition accepted")
	}
	if !hasErrorCode(res.Errors, "InvalidStatusTransition") {
		t.Errorf("missing InvalidStatusTransition, got %+v", res.Errors)
	}
	if got := fetchProperty(t, db, prop.ID).Status; got != models.PropertyStatusAvailable {
		t.Errorf("Status = %q, state must not change on a rejected event", got)
	}
}

func TestDeleteProperty_SoftDeleteHidesFromQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	del := commands.NewDeletePropertyHandler(db, nil)
	if res := del.Handle(ctx, commands.DeletePropertyCommand{ID: prop.ID}); res.IsFailed() {
		t.Fatalf("delete failed: %+v", res.Errors[0])
	}

	get := commands.NewGetPropertyHandler(db)
	res := get.Handle(ctx, commands.GetPropertyQuery{ID: prop.ID})
	if !res.IsFailed() {
		t.Fatal("soft-deleted property still visible")
	}
	if !hasErrorCode(res.Errors, "PropertyNotFound") {
		t.Errorf("missing PropertyNotFound, got %+v", res.Errors)
	}
}

func TestListProperties_StatusAndPriceFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)

	cheap := seedProperty(t, db, owner, category)
	expensive := seedProperty(t, db, owner, category)

	repo := repository.New[models.Property](db)
	p := fetchProperty(t, db, cheap.ID)
	p.Price = 100
	if _, err := repo.Update(ctx, p); err != nil {
		t.Fatalf("updating price: %v", err)
	}
	p = fetchProperty(t, db, expensive.ID)
	p.Price = 900000
	if _, err := repo.Update(ctx, p); err != nil {
		t.Fatalf("updating price: %v", err)
	}

	min := 500000.0
	h := commands.NewListPropertiesHandler(db)
	res := h.Handle(ctx, commands.ListPropertiesQuery{
		Status:   models.PropertyStatusAvailable,
		MinPrice: &min,
	})
	if res.IsFailed() {
		t.Fatalf("list failed: %+v", res.Errors[0])
	}
	if len(res.Value.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(res.Value.Items))
	}
	if res.Value.Items[0].ID != expensive.ID {
		t.Errorf("filtered to %s, want %s", res.Value.Items[0].ID, expensive.ID)
	}
}
