package commands_test

import (
	"context"
	"testing"
	"time"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
)

func saleCommand(propertyID, sellerID, buyerID string) commands.CreateSaleCommand {
	return commands.CreateSaleCommand{
		PropertyID:    propertyID,
		SellerID:      sellerID,
		BuyerID:       buyerID,
		Price:         750000,
		SaleDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ContractName:  "contract.jpg",
		ContractImage: []byte("image-bytes"),
	}
}

func TestCreateSale_Success(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	seller := seedCustomer(t, db, "seller")
	buyer := seedCustomer(t, db, "buyer")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, seller, category)

	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(ctx, saleCommand(prop.ID, seller.ID, buyer.ID))

	if res.IsFailed() {
		t.Fatalf("sale failed: %+v", res.Errors[0])
	}

	sale, err := repository.New[models.Sale](db).GetByID(ctx, res.Value)
	if err != nil || sale == nil {
		t.Fatalf("sale record missing: %v", err)
	}
	if sale.SellerID != seller.ID || sale.BuyerID != buyer.ID {
		t.Errorf("sale parties = %s/%s, want %s/%s", sale.SellerID, sale.BuyerID, seller.ID, buyer.ID)
	}
	if sale.Price != 750000 {
		t.Errorf("Price = %v, want 750000", sale.Price)
	}
	if sale.ContractImage == "" {
		t.Error("ContractImage path is empty")
	}
	if _, ok := files.files[sale.ContractImage]; !ok {
		t.Error("contract image not in storage")
	}

	// The property flipped atomically with the sale: sold, owned by the buyer.
	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusSold {
		t.Errorf("Status = %q, want sold", after.Status)
	}
	if after.OwnerID != buyer.ID {
		t.Errorf("OwnerID = %s, want buyer %s", after.OwnerID, buyer.ID)
	}
}

func TestCreateSale_SecondSaleRejected(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	seller := seedCustomer(t, db, "seller")
	buyer := seedCustomer(t, db, "buyer")
	other := seedCustomer(t, db, "other")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, seller, category)

	h := commands.NewCreateSaleHandler(db, files)
	if res := h.Handle(ctx, saleCommand(prop.ID, seller.ID, buyer.ID)); res.IsFailed() {
		t.Fatalf("first sale failed: %+v", res.Errors[0])
	}

	// Property is sold now and owned by the buyer; a resale attempt by the
	// original seller must fail on both ownership and availability.
	res := h.Handle(ctx, saleCommand(prop.ID, seller.ID, other.ID))
	if !res.IsFailed() {
		t.Fatal("second sale succeeded, want failure")
	}
	if !hasErrorCode(res.Errors, "SellerNotOwner") {
		t.Errorf("missing SellerNotOwner, got %+v", res.Errors)
	}
	if !hasErrorCode(res.Errors, "PropertyNotAvailable") {
		t.Errorf("missing PropertyNotAvailable, got %+v", res.Errors)
	}
}

func TestCreateSale_FailedPropertyMutationRollsBackSale(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	seller := seedCustomer(t, db, "seller")
	buyer := seedCustomer(t, db, "buyer")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, seller, category)

	// Reject the status flip at the database, so the failure lands after the
	// sale row is already staged in the transaction.
	if err := db.DB().Exec(`CREATE TRIGGER reject_sold_flip BEFORE UPDATE ON properties
		WHEN NEW.status = 'sold' BEGIN SELECT RAISE(ABORT, 'flip rejected'); END`).Error; err != nil {
		t.Fatalf("creating trigger: %v", err)
	}

	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(ctx, saleCommand(prop.ID, seller.ID, buyer.ID))
	if !res.IsFailed() {
		t.Fatal("sale succeeded despite failed property mutation")
	}

	// The staged sale row went down with the transaction.
	n, err := repository.New[models.Sale](db).Count(ctx, nil)
	if err != nil {
		t.Fatalf("counting sales: %v", err)
	}
	if n != 0 {
		t.Errorf("sales = %d after rollback, want 0", n)
	}

	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusAvailable || after.OwnerID != seller.ID {
		t.Errorf("property mutated despite rollback: status %q owner %s", after.Status, after.OwnerID)
	}
	if len(files.files) != 0 {
		t.Errorf("contract files left behind after rollback: %d", len(files.files))
	}
}

func TestCreateSale_SellerNotOwner(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()
	ctx := context.Background()

	owner := seedCustomer(t, db, "owner")
	impostor := seedCustomer(t, db, "impostor")
	buyer := seedCustomer(t, db, "buyer")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, owner, category)

	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(ctx, saleCommand(prop.ID, impostor.ID, buyer.ID))

	if !res.IsFailed() {
		t.Fatal("sale by non-owner succeeded")
	}
	if !hasErrorCode(res.Errors, "SellerNotOwner") {
		t.Errorf("missing SellerNotOwner, got %+v", res.Errors)
	}

	// Nothing mutated, nothing stored.
	after := fetchProperty(t, db, prop.ID)
	if after.Status != models.PropertyStatusAvailable || after.OwnerID != owner.ID {
		t.Errorf("property mutated on failed sale: status %q owner %s", after.Status, after.OwnerID)
	}
	if len(files.files) != 0 {
		t.Errorf("contract files left behind: %d", len(files.files))
	}
}

func TestCreateSale_SellerIsBuyer(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()

	seller := seedCustomer(t, db, "seller")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, seller, category)

	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(context.Background(), saleCommand(prop.ID, seller.ID, seller.ID))

	if !res.IsFailed() {
		t.Fatal("self-sale succeeded")
	}
	if !hasErrorCode(res.Errors, "SellerIsBuyer") {
		t.Errorf("missing SellerIsBuyer, got %+v", res.Errors)
	}
}

func TestCreateSale_MissingPartiesCollected(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()

	seller := seedCustomer(t, db, "seller")
	category := seedCategory(t, db)
	prop := seedProperty(t, db, seller, category)

	missing := "00000000-0000-4000-8000-000000000000"
	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(context.Background(), saleCommand(prop.ID, seller.ID, missing))

	if !res.IsFailed() {
		t.Fatal("sale with missing buyer succeeded")
	}
	if !hasErrorCode(res.Errors, "BuyerNotFound") {
		t.Errorf("missing BuyerNotFound, got %+v", res.Errors)
	}
}

func TestCreateSale_InvalidIDShortCircuits(t *testing.T) {
	db := newTestDB(t)
	files := newMemStore()

	h := commands.NewCreateSaleHandler(db, files)
	res := h.Handle(context.Background(), saleCommand("not-a-uuid", "also-bad", "still-bad"))

	if !res.IsFailed() {
		t.Fatal("sale with malformed ids succeeded")
	}
	for _, e := range res.Errors {
		if e.Code != "InvalidId" {
			t.Errorf("unexpected error %+v alongside id failures", e)
		}
	}
	if len(res.Errors) != 3 {
		t.Errorf("len(Errors) = %d, want 3 (one per malformed id)", len(res.Errors))
	}
	if len(files.files) != 0 {
		t.Error("contract stored despite short-circuit")
	}
}

func TestCreateSaleValidator_CollectsStructuralErrors(t *testing.T) {
	v := &commands.CreateSaleValidator{}
	errs := v.Validate(context.Background(), commands.CreateSaleCommand{Price: -5})

	if len(errs) < 4 {
		t.Fatalf("len(errs) = %d, want every violated rule collected", len(errs))
	}
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, f := range []string{"propertyid", "sellerid", "buyerid", "price"} {
		if !fields[f] {
			t.Errorf("missing violation for %s, got %v", f, fields)
		}
	}
}
