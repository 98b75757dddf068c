package commands

import (
	"context"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// CreateCustomerCommand registers a person who can own, buy or rent.
type CreateCustomerCommand struct {
	Name         string              `json:"name" validate:"required,min=2,max=200"`
	NationalID   string              `json:"national_id" validate:"required,min=5,max=32"`
	Phone        string              `json:"phone" validate:"required,min=5,max=32"`
	CustomerType models.CustomerType `json:"customer_type" validate:"required,oneof=buyer renter owner"`
}

type CreateCustomerValidator struct{}

func (v *CreateCustomerValidator) Validate(ctx context.Context, cmd CreateCustomerCommand) []*result.Error {
	return validateStruct(cmd)
}

type CreateCustomerHandler struct {
	customers *repository.Repository[models.Customer]
}

func NewCreateCustomerHandler(db *database.GormDB) *CreateCustomerHandler {
	return &CreateCustomerHandler{customers: repository.New[models.Customer](db)}
}

func (h *CreateCustomerHandler) Handle(ctx context.Context, cmd CreateCustomerCommand) result.Result[string] {
	taken, err := h.customers.Exists(ctx, repository.Where("national_id = ?", cmd.NationalID))
	if err != nil {
		return internalFor[string]("customer", "checking national id", err)
	}
	if taken {
		return result.Fail[string](result.ConflictError(CodeNationalIDTaken, "national id is already registered"))
	}

	customer := &models.Customer{
		ID:           uuid.NewString(),
		Name:         cmd.Name,
		NationalID:   cmd.NationalID,
		Phone:        cmd.Phone,
		CustomerType: cmd.CustomerType,
	}
	if err := h.customers.Add(ctx, customer); err != nil {
		return internalFor[string]("customer", "inserting customer", err)
	}
	return result.Ok(customer.ID)
}

// UpdateCustomerCommand edits contact details. National id is immutable.
type UpdateCustomerCommand struct {
	ID           string              `json:"id" validate:"required"`
	Name         string              `json:"name" validate:"required,min=2,max=200"`
	Phone        string              `json:"phone" validate:"required,min=5,max=32"`
	CustomerType models.CustomerType `json:"customer_type" validate:"required,oneof=buyer renter owner"`
}

type UpdateCustomerValidator struct{}

func (v *UpdateCustomerValidator) Validate(ctx context.Context, cmd UpdateCustomerCommand) []*result.Error {
	return validateStruct(cmd)
}

type UpdateCustomerHandler struct {
	customers *repository.Repository[models.Customer]
}

func NewUpdateCustomerHandler(db *database.GormDB) *UpdateCustomerHandler {
	return &UpdateCustomerHandler{customers: repository.New[models.Customer](db)}
}

func (h *UpdateCustomerHandler) Handle(ctx context.Context, cmd UpdateCustomerCommand) result.Result[result.Empty] {
	if errs := parseIDs(map[string]string{"id": cmd.ID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	customer, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("customer", "fetching customer", err)
	}
	if customer == nil {
		return result.Fail[result.Empty](result.NotFoundError(CodeCustomerNotFound, "customer does not exist"))
	}

	customer.Name = cmd.Name
	customer.Phone = cmd.Phone
	customer.CustomerType = cmd.CustomerType

	rows, err := h.customers.Update(ctx, customer)
	if err != nil {
		return internalFor[result.Empty]("customer", "updating customer", err)
	}
	if rows == 0 {
		return result.Fail[result.Empty](result.NotFoundError(CodeCustomerNotFound, "customer does not exist"))
	}
	return result.OkEmpty()
}

// DeleteCustomerCommand soft-deletes a customer.
type DeleteCustomerCommand struct {
	ID string `json:"id" validate:"required"`
}

type DeleteCustomerHandler struct {
	customers *repository.Repository[models.Customer]
}

func NewDeleteCustomerHandler(db *database.GormDB) *DeleteCustomerHandler {
	return &DeleteCustomerHandler{customers: repository.New[models.Customer](db)}
}

func (h *DeleteCustomerHandler) Handle(ctx context.Context, cmd DeleteCustomerCommand) result.Result[result.Empty] {
	if errs := parseIDs(map[string]string{"id": cmd.ID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	customer, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", cmd.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("customer", "fetching customer", err)
	}
	if customer == nil {
		return result.Fail[result.Empty](result.NotFoundError(CodeCustomerNotFound, "customer does not exist"))
	}

	if err := h.customers.Delete(ctx, customer); err != nil {
		return internalFor[result.Empty]("customer", "deleting customer", err)
	}
	return result.OkEmpty()
}

// GetCustomerQuery fetches one customer.
type GetCustomerQuery struct {
	ID string
}

type GetCustomerHandler struct {
	customers *repository.Repository[models.Customer]
}

func NewGetCustomerHandler(db *database.GormDB) *GetCustomerHandler {
	return &GetCustomerHandler{customers: repository.New[models.Customer](db)}
}

func (h *GetCustomerHandler) Handle(ctx context.Context, q GetCustomerQuery) result.Result[*models.Customer] {
	if errs := parseIDs(map[string]string{"id": q.ID}); len(errs) > 0 {
		return result.Fail[*models.Customer](errs...)
	}

	customer, err := h.customers.First(ctx, repository.And(
		repository.Where("id = ?", q.ID), repository.NotDeleted()))
	if err != nil {
		return internalFor[*models.Customer]("customer", "fetching customer", err)
	}
	if customer == nil {
		return result.Fail[*models.Customer](result.NotFoundError(CodeCustomerNotFound, "customer does not exist"))
	}
	return result.Ok(customer)
}

// ListCustomersQuery pages through customers, optionally by type.
type ListCustomersQuery struct {
	CustomerType models.CustomerType
	Page         int
	PageSize     int
}

type ListCustomersHandler struct {
	customers *repository.Repository[models.Customer]
}

func NewListCustomersHandler(db *database.GormDB) *ListCustomersHandler {
	return &ListCustomersHandler{customers: repository.New[models.Customer](db)}
}

func (h *ListCustomersHandler) Handle(ctx context.Context, q ListCustomersQuery) result.Result[*repository.PagedResult[models.Customer]] {
	conds := []repository.Condition{repository.NotDeleted()}
	if q.CustomerType != "" {
		conds = append(conds, repository.Where("customer_type = ?", q.CustomerType))
	}

	page, err := h.customers.ListPaged(ctx, repository.Query{
		Filter:   repository.And(conds...),
		OrderBy:  "created_at DESC",
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return internalFor[*repository.PagedResult[models.Customer]]("customer", "listing customers", err)
	}
	return result.Ok(page)
}
