package commands

import (
	"context"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// GetPropertyQuery fetches one listing with its category and owner.
type GetPropertyQuery struct {
	ID string
}

type GetPropertyHandler struct {
	properties *repository.Repository[models.Property]
}

func NewGetPropertyHandler(db *database.GormDB) *GetPropertyHandler {
	return &GetPropertyHandler{properties: repository.New[models.Property](db)}
}

func (h *GetPropertyHandler) Handle(ctx context.Context, q GetPropertyQuery) result.Result[*models.Property] {
	if errs := parseIDs(map[string]string{"id": q.ID}); len(errs) > 0 {
		return result.Fail[*models.Property](errs...)
	}

	prop, err := h.properties.First(ctx, repository.And(
		repository.Where("id = ?", q.ID), repository.NotDeleted()),
		"Category", "Owner")
	if err != nil {
		return internalFor[*models.Property]("property", "fetching property", err)
	}
	if prop == nil {
		return result.Fail[*models.Property](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}
	return result.Ok(prop)
}

// ListPropertiesQuery pages through the catalogue. Zero values mean "no
// constraint". Page is 1-based.
type ListPropertiesQuery struct {
	Status     models.PropertyStatus
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	OrderBy    string
	Page       int
	PageSize   int
}

type ListPropertiesHandler struct {
	properties *repository.Repository[models.Property]
}

func NewListPropertiesHandler(db *database.GormDB) *ListPropertiesHandler {
	return &ListPropertiesHandler{properties: repository.New[models.Property](db)}
}

func (h *ListPropertiesHandler) Handle(ctx context.Context, q ListPropertiesQuery) result.Result[*repository.PagedResult[models.Property]] {
	conds := []repository.Condition{repository.NotDeleted()}
	if q.Status != "" {
		conds = append(conds, repository.Where("status = ?", q.Status))
	}
	if q.CategoryID != "" {
		conds = append(conds, repository.Where("category_id = ?", q.CategoryID))
	}
	if q.MinPrice != nil {
		conds = append(conds, repository.Where("price >= ?", *q.MinPrice))
	}
	if q.MaxPrice != nil {
		conds = append(conds, repository.Where("price <= ?", *q.MaxPrice))
	}

	orderBy := q.OrderBy
	switch orderBy {
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	case "", "newest":
		orderBy = "created_at DESC"
	default:
		orderBy = "created_at DESC"
	}

	page, err := h.properties.ListPaged(ctx, repository.Query{
		Filter:   repository.And(conds...),
		OrderBy:  orderBy,
		Includes: []string{"Category"},
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return internalFor[*repository.PagedResult[models.Property]]("property", "listing properties", err)
	}
	return result.Ok(page)
}

// GetSaleQuery fetches one sale with its parties and property.
type GetSaleQuery struct {
	ID string
}

type GetSaleHandler struct {
	sales *repository.Repository[models.Sale]
}

func NewGetSaleHandler(db *database.GormDB) *GetSaleHandler {
	return &GetSaleHandler{sales: repository.New[models.Sale](db)}
}

func (h *GetSaleHandler) Handle(ctx context.Context, q GetSaleQuery) result.Result[*models.Sale] {
	if errs := parseIDs(map[string]string{"id": q.ID}); len(errs) > 0 {
		return result.Fail[*models.Sale](errs...)
	}

	sale, err := h.sales.GetByID(ctx, q.ID, "Property", "Seller", "Buyer")
	if err != nil {
		return internalFor[*models.Sale]("sale", "fetching sale", err)
	}
	if sale == nil {
		return result.Fail[*models.Sale](result.NotFoundError(CodeSaleNotFound, "sale does not exist"))
	}
	return result.Ok(sale)
}

// ListSalesQuery pages through sales, optionally scoped to one property or
// one customer (as either side of the deal).
type ListSalesQuery struct {
	PropertyID string
	CustomerID string
	Page       int
	PageSize   int
}

type ListSalesHandler struct {
	sales *repository.Repository[models.Sale]
}

func NewListSalesHandler(db *database.GormDB) *ListSalesHandler {
	return &ListSalesHandler{sales: repository.New[models.Sale](db)}
}

func (h *ListSalesHandler) Handle(ctx context.Context, q ListSalesQuery) result.Result[*repository.PagedResult[models.Sale]] {
	var conds []repository.Condition
	if q.PropertyID != "" {
		conds = append(conds, repository.Where("property_id = ?", q.PropertyID))
	}
	if q.CustomerID != "" {
		conds = append(conds, repository.Where("seller_id = ? OR buyer_id = ?", q.CustomerID, q.CustomerID))
	}

	page, err := h.sales.ListPaged(ctx, repository.Query{
		Filter:   repository.And(conds...),
		OrderBy:  "created_at DESC",
		Includes: []string{"Property"},
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return internalFor[*repository.PagedResult[models.Sale]]("sale", "listing sales", err)
	}
	return result.Ok(page)
}

// GetRentalQuery fetches one rental with its parties and property.
type GetRentalQuery struct {
	ID string
}

type GetRentalHandler struct {
	rentals *repository.Repository[models.Rental]
}

func NewGetRentalHandler(db *database.GormDB) *GetRentalHandler {
	return &GetRentalHandler{rentals: repository.New[models.Rental](db)}
}

func (h *GetRentalHandler) Handle(ctx context.Context, q GetRentalQuery) result.Result[*models.Rental] {
	if errs := parseIDs(map[string]string{"id": q.ID}); len(errs) > 0 {
		return result.Fail[*models.Rental](errs...)
	}

	rental, err := h.rentals.GetByID(ctx, q.ID, "Property", "Lessor", "Lessee")
	if err != nil {
		return internalFor[*models.Rental]("rental", "fetching rental", err)
	}
	if rental == nil {
		return result.Fail[*models.Rental](result.NotFoundError(CodeRentalNotFound, "rental does not exist"))
	}
	return result.Ok(rental)
}

// ListRentalsQuery pages through rentals.
type ListRentalsQuery struct {
	PropertyID string
	CustomerID string
	Page       int
	PageSize   int
}

type ListRentalsHandler struct {
	rentals *repository.Repository[models.Rental]
}

func NewListRentalsHandler(db *database.GormDB) *ListRentalsHandler {
	return &ListRentalsHandler{rentals: repository.New[models.Rental](db)}
}

func (h *ListRentalsHandler) Handle(ctx context.Context, q ListRentalsQuery) result.Result[*repository.PagedResult[models.Rental]] {
	var conds []repository.Condition
	if q.PropertyID != "" {
		conds = append(conds, repository.Where("property_id = ?", q.PropertyID))
	}
	if q.CustomerID != "" {
		conds = append(conds, repository.Where("lessor_id = ? OR lessee_id = ?", q.CustomerID, q.CustomerID))
	}

	page, err := h.rentals.ListPaged(ctx, repository.Query{
		Filter:   repository.And(conds...),
		OrderBy:  "created_at DESC",
		Includes: []string{"Property"},
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return internalFor[*repository.PagedResult[models.Rental]]("rental", "listing rentals", err)
	}
	return result.Ok(page)
}
