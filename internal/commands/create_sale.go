package commands

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/fsm"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
	"real-estate-backend/internal/storage"
)

// CreateSaleCommand requests the sale of a property: the sale record is
// created and the property flips to sold with the buyer as its new owner,
// as one atomic unit.
type CreateSaleCommand struct {
	PropertyID    string    `json:"property_id" validate:"required"`
	SellerID      string    `json:"seller_id" validate:"required"`
	BuyerID       string    `json:"buyer_id" validate:"required"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	SaleDate      time.Time `json:"sale_date" validate:"required"`
	ContractName  string    `json:"contract_name" validate:"required"`
	ContractImage []byte    `json:"-" validate:"required"`
}

// CreateSaleValidator runs the structural rules.
type CreateSaleValidator struct{}

func (v *CreateSaleValidator) Validate(ctx context.Context, cmd CreateSaleCommand) []*result.Error {
	return validateStruct(cmd)
}

// CreateSaleHandler executes the sale. Ordering is deliberate: preconditions
// against current state first (no mutation on any failure), then the contract
// image write, then a transaction covering exactly the sale insert and the
// property mutation. The status precondition is re-checked inside the
// transaction under a row lock so two concurrent sales of the same property
// cannot both pass the check-then-act window.
type CreateSaleHandler struct {
	db         *database.GormDB
	properties *repository.Repository[models.Property]
	customers  *repository.Repository[models.Customer]
	sales      *repository.Repository[models.Sale]
	files      storage.ContractStore
	guard      *fsm.Guard
}

func NewCreateSaleHandler(db *database.GormDB, files storage.ContractStore) *CreateSaleHandler {
	return &CreateSaleHandler{
		db:         db,
		properties: repository.New[models.Property](db),
		customers:  repository.New[models.Customer](db),
		sales:      repository.New[models.Sale](db),
		files:      files,
		guard:      fsm.NewGuard(),
	}
}

func (h *CreateSaleHandler) Handle(ctx context.Context, cmd CreateSaleCommand) result.Result[string] {
	// Unparsable identifiers short-circuit; every downstream check would be
	// meaningless.
	if errs := parseIDs(map[string]string{
		"property_id": cmd.PropertyID,
		"seller_id":   cmd.SellerID,
		"buyer_id":    cmd.BuyerID,
	}); len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	// Preconditions are collected, not short-circuited: the caller gets every
	// detectable violation in one response.
	var errs []*result.Error

	seller, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.SellerID), repository.NotDeleted()))
	if err != nil {
		return h.internal("fetching seller", err)
	}
	if seller == nil {
		errs = append(errs, result.NotFoundError(CodeSellerNotFound, "seller does not exist"))
	}

	buyer, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.BuyerID), repository.NotDeleted()))
	if err != nil {
		return h.internal("fetching buyer", err)
	}
	if buyer == nil {
		errs = append(errs, result.NotFoundError(CodeBuyerNotFound, "buyer does not exist"))
	}

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", cmd.PropertyID), repository.NotDeleted()))
	if err != nil {
		return h.internal("fetching property", err)
	}
	if prop == nil {
		errs = append(errs, result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	if cmd.SellerID == cmd.BuyerID {
		errs = append(errs, result.ConflictError(CodeSellerIsBuyer, "seller and buyer must be different customers"))
	}
	if prop != nil && seller != nil && prop.OwnerID != seller.ID {
		errs = append(errs, result.ConflictError(CodeSellerNotOwner, "seller is not the current owner of the property"))
	}
	if prop != nil && !prop.IsAvailable() {
		errs = append(errs, result.ConflictError(CodePropertyNotAvailable, "property is not available for sale"))
	}

	if len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	// File write happens before the transaction opens: a storage failure must
	// never require a database rollback.
	contractPath, err := h.files.Save(storage.KindSaleContract, cmd.ContractName, cmd.ContractImage)
	if err != nil {
		return h.internal("storing sale contract", err)
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		h.discardContract(contractPath)
		return h.internal("opening sale transaction", err)
	}
	defer tx.Rollback()

	txProps := h.properties.WithTx(tx)
	txSales := h.sales.WithTx(tx)

	// Recheck inside the transaction under a row lock. A concurrent sale or
	// rental of the same property blocks here until the winner commits, then
	// reads the committed status and fails the guard; a snapshot read would
	// let both transactions see "available".
	current, err := txProps.First(ctx, repository.And(
		repository.Where("id = ?", prop.ID), repository.ForUpdate()))
	if err != nil || current == nil {
		h.discardContract(contractPath)
		if err != nil {
			return h.internal("rechecking property", err)
		}
		return result.Fail[string](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	newStatus, err := h.guard.Apply(ctx, current.Status, models.EventSell)
	if err != nil {
		h.discardContract(contractPath)
		return result.Fail[string](result.ConflictError(CodePropertyNotAvailable, "property is not available for sale"))
	}

	sale := &models.Sale{
		ID:            uuid.NewString(),
		PropertyID:    current.ID,
		SellerID:      seller.ID,
		BuyerID:       buyer.ID,
		Price:         cmd.Price,
		SaleDate:      cmd.SaleDate,
		ContractImage: contractPath,
	}
	if err := txSales.Add(ctx, sale); err != nil {
		h.discardContract(contractPath)
		return h.internal("staging sale", err)
	}

	current.OwnerID = buyer.ID
	current.Status = newStatus
	rows, err := txProps.Update(ctx, current)
	if err != nil {
		h.discardContract(contractPath)
		return h.internal("staging property mutation", err)
	}
	if rows == 0 {
		h.discardContract(contractPath)
		return h.internal("staging property mutation", errUpdateTouchedNothing)
	}

	if err := tx.Commit(); err != nil {
		h.discardContract(contractPath)
		return h.internal("committing sale", err)
	}

	return result.Ok(sale.ID)
}

func (h *CreateSaleHandler) internal(op string, err error) result.Result[string] {
	log.Printf("[sale] %s: %v", op, err)
	return result.Fail[string](result.InternalError(CodeSaleFailed))
}

func (h *CreateSaleHandler) discardContract(path string) {
	if err := h.files.Delete(path); err != nil {
		log.Printf("[sale] discarding contract %s: %v", path, err)
	}
}
