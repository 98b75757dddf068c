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

// CreateRentalCommand requests a lease on a property. The lessor is not
// supplied by the caller: property ownership is the source of truth for who
// is leasing it out, so the lessor is derived from the property's current
// owner. A rental flips status only; ownership is unchanged.
type CreateRentalCommand struct {
	PropertyID    string          `json:"property_id" validate:"required"`
	LesseeID      string          `json:"lessee_id" validate:"required"`
	MonthlyRent   float64         `json:"monthly_rent" validate:"required,gt=0"`
	StartDate     time.Time       `json:"start_date" validate:"required"`
	Duration      int             `json:"duration" validate:"required,gt=0"`
	RentType      models.RentType `json:"rent_type" validate:"required,oneof=monthly yearly"`
	ContractName  string          `json:"contract_name" validate:"required"`
	ContractImage []byte          `json:"-" validate:"required"`
}

// CreateRentalValidator runs the structural rules.
type CreateRentalValidator struct{}

func (v *CreateRentalValidator) Validate(ctx context.Context, cmd CreateRentalCommand) []*result.Error {
	return validateStruct(cmd)
}

// CreateRentalHandler executes the lease with the same ordering as a sale:
// preconditions, contract image, then one transaction covering the rental
// insert and the property status flip, with a locked in-transaction recheck.
type CreateRentalHandler struct {
	db         *database.GormDB
	properties *repository.Repository[models.Property]
	customers  *repository.Repository[models.Customer]
	rentals    *repository.Repository[models.Rental]
	files      storage.ContractStore
	guard      *fsm.Guard
}

func NewCreateRentalHandler(db *database.GormDB, files storage.ContractStore) *CreateRentalHandler {
	return &CreateRentalHandler{
		db:         db,
		properties: repository.New[models.Property](db),
		customers:  repository.New[models.Customer](db),
		rentals:    repository.New[models.Rental](db),
		files:      files,
		guard:      fsm.NewGuard(),
	}
}

func (h *CreateRentalHandler) Handle(ctx context.Context, cmd CreateRentalCommand) result.Result[string] {
	if errs := parseIDs(map[string]string{
		"property_id": cmd.PropertyID,
		"lessee_id":   cmd.LesseeID,
	}); len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	var errs []*result.Error

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", cmd.PropertyID), repository.NotDeleted()))
	if err != nil {
		return h.internal("fetching property", err)
	}
	if prop == nil {
		errs = append(errs, result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	lessee, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.LesseeID), repository.NotDeleted()))
	if err != nil {
		return h.internal("fetching lessee", err)
	}
	if lessee == nil {
		errs = append(errs, result.NotFoundError(CodeLesseeNotFound, "lessee does not exist"))
	}

	if prop != nil && !prop.IsAvailable() {
		errs = append(errs, result.ConflictError(CodePropertyNotAvailable, "property is not available for rent"))
	}

	if len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	contractPath, err := h.files.Save(storage.KindRentalContract, cmd.ContractName, cmd.ContractImage)
	if err != nil {
		return h.internal("storing rental contract", err)
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		h.discardContract(contractPath)
		return h.internal("opening rental transaction", err)
	}
	defer tx.Rollback()

	txProps := h.properties.WithTx(tx)
	txRentals := h.rentals.WithTx(tx)

	// Locked recheck, same reasoning as the sale path: the row lock turns
	// this into a current read, so a concurrent writer's commit is visible.
	current, err := txProps.First(ctx, repository.And(
		repository.Where("id = ?", prop.ID), repository.ForUpdate()))
	if err != nil || current == nil {
		h.discardContract(contractPath)
		if err != nil {
			return h.internal("rechecking property", err)
		}
		return result.Fail[string](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	newStatus, err := h.guard.Apply(ctx, current.Status, models.EventRent)
	if err != nil {
		h.discardContract(contractPath)
		return result.Fail[string](result.ConflictError(CodePropertyNotAvailable, "property is not available for rent"))
	}

	rental := &models.Rental{
		ID:            uuid.NewString(),
		PropertyID:    current.ID,
		LessorID:      current.OwnerID,
		LesseeID:      lessee.ID,
		MonthlyRent:   cmd.MonthlyRent,
		StartDate:     cmd.StartDate,
		Duration:      cmd.Duration,
		RentType:      cmd.RentType,
		ContractImage: contractPath,
	}
	if err := txRentals.Add(ctx, rental); err != nil {
		h.discardContract(contractPath)
		return h.internal("staging rental", err)
	}

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
		return h.internal("committing rental", err)
	}

	return result.Ok(rental.ID)
}

func (h *CreateRentalHandler) internal(op string, err error) result.Result[string] {
	log.Printf("[rental] %s: %v", op, err)
	return result.Fail[string](result.InternalError(CodeRentalFailed))
}

func (h *CreateRentalHandler) discardContract(path string) {
	if err := h.files.Delete(path); err != nil {
		log.Printf("[rental] discarding contract %s: %v", path, err)
	}
}
