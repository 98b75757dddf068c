package commands_test

import (
	"context"
	"testing"
	"time"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
)

func rentalCommand(propertyID, lesseeID string) commands.CreateRentalCommand {
	return commands.CreateRentalCommand{
		PropertyID:    propertyID,
		LesseeID:      lesseeID,
		MonthlyRent:   1000,
		StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Duration:      6,
		RentType:      models.RentTypeMonthly,
		ContractName:  "lease.jpg",
		ContractImage: []byte("image-bytes"),
	}
}

func TestCreateRental_Success(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	lessee := seedCustomer(t, db, "lessee")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	h := commands.NewCreateRentalHandler(db, files)
	res := h.Handle(ctx, rentalCommand(prop.ID, lessee.ID))

	if res.IsFailed() {
		t.Fatalf("rental failed: %+v", res.Errors[0])
	}

	rental, err := repository.New[models.Rental](db).GetByID(ctx, res.Value)
	if err != nil || rental == nil {
		t.Fatalf("rental record missing: %v", err)
	}

	// The lessor is derived from the property's owner, never caller input.
	if rental.LessorID != owner.ID {
		t.Errorf("LessorID = %s, want owner %s", rental.LessorID, owner.ID)
	}
	if rental.LesseeID != lessee.ID {
		t.Errorf("LesseeID = %s, want %s", rental.LesseeID, lessee.ID)
	}
	if rental.TotalPrice() != 6000 {
		t.Errorf("TotalPrice() = %v, want 6000", rental.TotalPrice())
	}

	// Status flips to rented; ownership is untouched by a rental.
	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusRented {
		t.Errorf("Status = %q, want rented", after.Status)
	}
	if after.OwnerID != owner.ID {
		t.Errorf("OwnerID = %s, rentals must not change ownership", after.OwnerID)
	}
}

func TestCreateRental_YearlyDuration(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	lessee := seedCustomer(t, db, "lessee")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	cmd := rentalCommand(prop.ID, lessee.ID)
	cmd.RentType = models.RentTypeYearly
	cmd.Duration = 2

	h := commands.NewCreateRentalHandler(db, files)
	res := h.Handle(ctx, cmd)
	if res.IsFailed() {
		t.Fatalf("rental failed: %+v", res.Errors[0])
	}

	rental, _ := repository.New[models.Rental](db).GetByID(ctx, res.Value)
	if rental.DurationMonths() != 24 {
		t.Errorf("DurationMonths() = %d, want 24", rental.DurationMonths())
	}
	if rental.TotalPrice() != 24000 {
		t.Errorf("TotalPrice() = %v, want 24000", rental.TotalPrice())
	}
}

func TestCreateRental_UnavailableProperty(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	lessee := seedCustomer(t, db, "lessee")
	other := seedCustomer(t, db, "other")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	h := commands.NewCreateRentalHandler(db, files)
	if res := h.Handle(ctx, rentalCommand(prop.ID, lessee.ID)); res.IsFailed() {
		t.Fatalf("first rental failed: %+v", res.Errors[0])
	}

	res := h.Handle(ctx, rentalCommand(prop.ID, other.ID))
	if !res.IsFailed() {
		t.Fatal("rental of rented property succeeded")
	}
	if !hasErrorCode(res.Errors, "PropertyNotAvailable") {
		t.Errorf("missing PropertyNotAvailable, got %+v", res.Errors)
	}
	if len(files.files) != 1 {
		t.Errorf("stored files = %d, want only the first contract", len(files.files))
	}
}

func TestCreateRental_FailedStatusFlipRollsBackRental(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	lessee := seedCustomer(t, db, "lessee")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	if err := db.DB().Exec(`CREATE TRIGGER reject_rented_flip BEFORE UPDATE ON properties
		WHEN NEW.status = 'rented' BEGIN SELECT RAISE(ABORT, 'flip rejected'); END`).Error; err != nil {
		t.Fatalf("creating trigger: %v", err)
	}

	h := commands.NewCreateRentalHandler(db, files)
	res := h.Handle(ctx, rentalCommand(prop.ID, lessee.ID))
	if !res.IsFailed() {
		t.Fatal("rental succeeded despite failed status flip")
	}

	n, err := repository.New[models.Rental](db).Count(ctx, nil)
	if err != nil {
		t.Fatalf("counting rentals: %v", err)
	}
	if n != 0 {
		t.Errorf("rentals = %d after rollback, want 0", n)
	}

	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusAvailable {
		t.Errorf("Status = %q after rollback, want available", after.Status)
	}
	if len(files.files) != 0 {
		t.Errorf("contract files left behind after rollback: %d", len(files.files))
	}
}

func TestCreateRental_MissingLessee(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()

	owner := seedCustomer(t, db, "owner")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	missing := "00000000-0000-4000-8000-000000000000"
	h := commands.NewCreateRentalHandler(db, files)
	res := h.Handle(context.Background(), rentalCommand(prop.ID, missing))

	if !res.IsFailed() {
		t.Fatal("rental with missing lessee succeeded")
	}
	if !hasErrorCode(res.Errors, "LesseeNotFound") {
		t.Errorf("missing LesseeNotFound, got %+v", res.Errors)
	}

	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusAvailable {
		t.Errorf("Status = %q, want available", after.Status)
	}
}

func TestCreateRentalValidator_RentTypeRule(t *testing.T) {
	v := &commands.CreateRentalValidator{}
	cmd := rentalCommand("00000000-0000-4000-8000-000000000000", "00000000-0000-4000-8000-000000000001")
	cmd.RentType = "weekly"

	errs := v.Validate(context.Background(), cmd)
	if len(errs) != 1 {
		t.Fatalf("len(errs) = %d, want 1", len(errs))
	}
	if errs[0].Field != "renttype" {
		t.Errorf("Field = %q, want renttype", errs[0].Field)
	}
}
