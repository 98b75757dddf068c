package commands

import (
	"context"
	"log"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/fsm"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// PropertyIndexer pushes catalogue changes into the search index. Indexing is
// best-effort: a search outage never fails a command.
type PropertyIndexer interface {
	IndexProperty(p *models.Property) error
	RemoveProperty(id string) error
}

// CreatePropertyCommand lists a new property. The property starts available
// and owned by the given customer.
type CreatePropertyCommand struct {
	PropertyNumber string   `json:"property_number" validate:"required,min=3,max=32"`
	Title          string   `json:"title" validate:"required"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	Area           *float64 `json:"area" validate:"omitempty,gt=0"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	CategoryID     string   `json:"category_id" validate:"required"`
	OwnerID        string   `json:"owner_id" validate:"required"`
}

// CreatePropertyValidator checks structural rules plus category existence,
// so a bad category never reaches the handler.
type CreatePropertyValidator struct {
	categories *repository.Repository[models.Category]
}

func NewCreatePropertyValidator(db *database.GormDB) *CreatePropertyValidator {
	return &CreatePropertyValidator{categories: repository.New[models.Category](db)}
}

func (v *CreatePropertyValidator) Validate(ctx context.Context, cmd CreatePropertyCommand) []*result.Error {
	errs := validateStruct(cmd)

	if cmd.CategoryID != "" {
		if _, err := uuid.Parse(cmd.CategoryID); err != nil {
			errs = append(errs, result.ValidationError(CodeInvalidID, "category_id", "category_id is not a valid identifier"))
		} else {
			exists, err := v.categories.Exists(ctx, repository.And(
				repository.Where("id = ?", cmd.CategoryID), repository.NotDeleted()))
			if err != nil {
				log.Printf("[property] checking category: %v", err)
				errs = append(errs, result.InternalError(CodeOperationFailed))
			} else if !exists {
				errs = append(errs, result.ValidationError(CodeCategoryNotFound, "category_id", "category does not exist"))
			}
		}
	}

	return errs
}

// CreatePropertyHandler inserts the listing. Single-aggregate: no
// transaction needed.
type CreatePropertyHandler struct {
	properties *repository.Repository[models.Property]
	customers  *repository.Repository[models.Customer]
	indexer    PropertyIndexer
}

func NewCreatePropertyHandler(db *database.GormDB, indexer PropertyIndexer) *CreatePropertyHandler {
	return &CreatePropertyHandler{
		properties: repository.New[models.Property](db),
		customers:  repository.New[models.Customer](db),
		indexer:    indexer,
	}
}

func (h *CreatePropertyHandler) Handle(ctx context.Context, cmd CreatePropertyCommand) result.Result[string] {
	if errs := parseIDs(map[string]string{"owner_id": cmd.OwnerID}); len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	var errs []*result.Error

	owner, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.OwnerID), repository.NotDeleted()))
	if err != nil {
		return internalFor[string]("property", "fetching owner", err)
	}
	if owner == nil {
		errs = append(errs, result.NotFoundError(CodeCustomerNotFound, "owner does not exist"))
	}

	taken, err := h.properties.Exists(ctx, repository.Where("property_number = ?", cmd.PropertyNumber))
	if err != nil {
		return internalFor[string]("property", "checking property number", err)
	}
	if taken {
		errs = append(errs, result.ConflictError(CodePropertyNumberTaken, "property number is already in use"))
	}

	if len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	prop := &models.Property{
		ID:             uuid.NewString(),
		PropertyNumber: cmd.PropertyNumber,
		Title:          cmd.Title,
		Description:    cmd.Description,
		Address:        cmd.Address,
		Area:           cmd.Area,
		Price:          cmd.Price,
		Status:         models.PropertyStatusAvailable,
		CategoryID:     cmd.CategoryID,
		OwnerID:        cmd.OwnerID,
	}
	if err := h.properties.Add(ctx, prop); err != nil {
		return internalFor[string]("property", "inserting property", err)
	}

	if h.indexer != nil {
		if err := h.indexer.IndexProperty(prop); err != nil {
			log.Printf("[property] indexing %s: %v", prop.ID, err)
		}
	}

	return result.Ok(prop.ID)
}

// UpdatePropertyCommand edits listing details. Status and owner are not
// touched here; they change only through sale/rental/status commands.
type UpdatePropertyCommand struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Area        *float64 `json:"area" validate:"omitempty,gt=0"`
	Price       float64  `json:"price" validate:"required,gt=0"`
}

type UpdatePropertyValidator struct{}

func (v *UpdatePropertyValidator) Validate(ctx context.Context, cmd UpdatePropertyCommand) []*result.Error {
	return validateStruct(cmd)
}

type UpdatePropertyHandler struct {
	properties *repository.Repository[models.Property]
	indexer    PropertyIndexer
}

func NewUpdatePropertyHandler(db *database.GormDB, indexer PropertyIndexer) *UpdatePropertyHandler {
	return &UpdatePropertyHandler{properties: repository.New[models.Property](db), indexer: indexer}
}

func (h *UpdatePropertyHandler) Handle(ctx context.Context, cmd UpdatePropertyCommand) result.Result[result.Empty] {
	if errs := parseIDs(map[string]string{"id": cmd.ID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", cmd.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("property", "fetching property", err)
	}
	if prop == nil {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	prop.Title = cmd.Title
	prop.Description = cmd.Description
	prop.Address = cmd.Address
	prop.Area = cmd.Area
	prop.Price = cmd.Price

	rows, err := h.properties.Update(ctx, prop)
	if err != nil {
		return internalFor[result.Empty]("property", "updating property", err)
	}
	if rows == 0 {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	if h.indexer != nil {
		if err := h.indexer.IndexProperty(prop); err != nil {
			log.Printf("[property] indexing %s: %v", prop.ID, err)
		}
	}

	return result.OkEmpty()
}

// ChangePropertyStatusCommand applies a status event outside the sale/rental
// flows (release, relist, maintain, restore). Single-aggregate update; the
// transition table decides what is allowed.
type ChangePropertyStatusCommand struct {
	ID    string             `json:"id" validate:"required"`
	Event models.StatusEvent `json:"event" validate:"required,oneof=release relist maintain restore"`
}

type ChangePropertyStatusValidator struct{}

func (v *ChangePropertyStatusValidator) Validate(ctx context.Context, cmd ChangePropertyStatusCommand) []*result.Error {
	return validateStruct(cmd)
}

type ChangePropertyStatusHandler struct {
	properties *repository.Repository[models.Property]
	guard      *fsm.Guard
	indexer    PropertyIndexer
}

func NewChangePropertyStatusHandler(db *database.GormDB, indexer PropertyIndexer) *ChangePropertyStatusHandler {
	return &ChangePropertyStatusHandler{
		properties: repository.New[models.Property](db),
		guard:      fsm.NewGuard(),
		indexer:    indexer,
	}
}

func (h *ChangePropertyStatusHandler) Handle(ctx context.Context, cmd ChangePropertyStatusCommand) result.Result[result.Empty] {
	if errs := parseIDs(map[string]string{"id": cmd.ID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", cmd.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("property", "fetching property", err)
	}
	if prop == nil {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	newStatus, err := h.guard.Apply(ctx, prop.Status, cmd.Event)
	if err != nil {
		return result.Fail[result.Empty](result.ConflictError(CodeInvalidTransition,
			"status change is not allowed from the property's current status"))
	}

	prop.Status = newStatus
	rows, err := h.properties.Update(ctx, prop)
	if err != nil {
		return internalFor[result.Empty]("property", "updating status", err)
	}
	if rows == 0 {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	if h.indexer != nil {
		if err := h.indexer.IndexProperty(prop); err != nil {
			log.Printf("[property] indexing %s: %v", prop.ID, err)
		}
	}

	return result.OkEmpty()
}

// DeletePropertyCommand soft-deletes a listing.
type DeletePropertyCommand struct {
	ID string `json:"id" validate:"required"`
}

type DeletePropertyHandler struct {
	properties *repository.Repository[models.Property]
	indexer    PropertyIndexer
}

func NewDeletePropertyHandler(db *database.GormDB, indexer PropertyIndexer) *DeletePropertyHandler {
	return &DeletePropertyHandler{properties: repository.New[models.Property](db), indexer: indexer}
}

func (h *DeletePropertyHandler) Handle(ctx context.Context, cmd DeletePropertyCommand) result.Result[result.Empty] {
	if errs := parseIDs(map[string]string{"id": cmd.ID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", cmd.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("property", "fetching property", err)
	}
	if prop == nil {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	if err := h.properties.Delete(ctx, prop); err != nil {
		return internalFor[result.Empty]("property", "deleting property", err)
	}

	if h.indexer != nil {
		if err := h.indexer.RemoveProperty(prop.ID); err != nil {
			log.Printf("[property] removing %s from index: %v", prop.ID, err)
		}
	}

	return result.OkEmpty()
}

// internalFor logs the detail and hands out a generic internal error.
func internalFor[T any](scope, op string, err error) result.Result[T] {
	log.Printf("[%s] %s: %v", scope, op, err)
	return result.Fail[T](result.InternalError(CodeOperationFailed))
}
