package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/pipeline"
)

// CategoryHandler handles property category endpoints.
type CategoryHandler struct {
	create *pipeline.Pipeline[commands.CreateCategoryCommand, string]
	list   *pipeline.Pipeline[commands.ListCategoriesQuery, []models.Category]
}

func NewCategoryHandler(db *database.GormDB) *CategoryHandler {
	return &CategoryHandler{
		create: pipeline.New(&commands.CreateCategoryValidator{}, commands.NewCreateCategoryHandler(db)),
		list:   pipeline.New[commands.ListCategoriesQuery, []models.Category](nil, commands.NewListCategoriesHandler(db)),
	}
}

// Create adds a category
func (h *CategoryHandler) Create(c *gin.Context) {
	var cmd commands.CreateCategoryCommand
	if !bindJSON(c, &cmd) {
		return
	}
	respond(c, http.StatusCreated, h.create.Send(c.Request.Context(), cmd))
}

// List returns all live categories
func (h *CategoryHandler) List(c *gin.Context) {
	respond(c, http.StatusOK, h.list.Send(c.Request.Context(), commands.ListCategoriesQuery{}))
}
