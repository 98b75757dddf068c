package commands

import (
	"context"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// CreateCategoryCommand adds a property category.
type CreateCategoryCommand struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CreateCategoryValidator struct{}

func (v *CreateCategoryValidator) Validate(ctx context.Context, cmd CreateCategoryCommand) []*result.Error {
	return validateStruct(cmd)
}

type CreateCategoryHandler struct {
	categories *repository.Repository[models.Category]
}

func NewCreateCategoryHandler(db *database.GormDB) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: repository.New[models.Category](db)}
}

func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) result.Result[string] {
	taken, err := h.categories.Exists(ctx, repository.Where("name = ?", cmd.Name))
	if err != nil {
		return internalFor[string]("category", "checking name", err)
	}
	if taken {
		return result.Fail[string](result.ConflictError(CodeOperationFailed, "category name is already in use"))
	}

	category := &models.Category{
		ID:   uuid.NewString(),
		Name: cmd.Name,
	}
	if err := h.categories.Add(ctx, category); err != nil {
		return internalFor[string]("category", "inserting category", err)
	}
	return result.Ok(category.ID)
}

// ListCategoriesQuery returns all live categories.
type ListCategoriesQuery struct{}

type ListCategoriesHandler struct {
	categories *repository.Repository[models.Category]
}

func NewListCategoriesHandler(db *database.GormDB) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: repository.New[models.Category](db)}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context, q ListCategoriesQuery) result.Result[[]models.Category] {
	items, err := h.categories.List(ctx, repository.Query{
		Filter:   repository.NotDeleted(),
		OrderBy:  "name ASC",
		PageSize: 100,
	})
	if err != nil {
		return internalFor[[]models.Category]("category", "listing categories", err)
	}
	return result.Ok(items)
}
