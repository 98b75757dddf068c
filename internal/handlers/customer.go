package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/pipeline"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// CustomerHandler handles customer registry endpoints.
type CustomerHandler struct {
	create *pipeline.Pipeline[commands.CreateCustomerCommand, string]
	update *pipeline.Pipeline[commands.UpdateCustomerCommand, result.Empty]
	del    *pipeline.Pipeline[commands.DeleteCustomerCommand, result.Empty]
	get    *pipeline.Pipeline[commands.GetCustomerQuery, *models.Customer]
	list   *pipeline.Pipeline[commands.ListCustomersQuery, *repository.PagedResult[models.Customer]]
}

func NewCustomerHandler(db *database.GormDB) *CustomerHandler {
	return &CustomerHandler{
		create: pipeline.New(&commands.CreateCustomerValidator{}, commands.NewCreateCustomerHandler(db)),
		update: pipeline.New(&commands.UpdateCustomerValidator{}, commands.NewUpdateCustomerHandler(db)),
		del:    pipeline.New[commands.DeleteCustomerCommand, result.Empty](nil, commands.NewDeleteCustomerHandler(db)),
		get:    pipeline.New[commands.GetCustomerQuery, *models.Customer](nil, commands.NewGetCustomerHandler(db)),
		list:   pipeline.New[commands.ListCustomersQuery, *repository.PagedResult[models.Customer]](nil, commands.NewListCustomersHandler(db)),
	}
}

// Create registers a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var cmd commands.CreateCustomerCommand
	if !bindJSON(c, &cmd) {
		return
	}
	respond(c, http.StatusCreated, h.create.Send(c.Request.Context(), cmd))
}

// Update edits contact details
func (h *CustomerHandler) Update(c *gin.Context) {
	var cmd commands.UpdateCustomerCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = c.Param("id")
	respond(c, http.StatusOK, h.update.Send(c.Request.Context(), cmd))
}

// Delete soft-deletes a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	cmd := commands.DeleteCustomerCommand{ID: c.Param("id")}
	respond(c, http.StatusOK, h.del.Send(c.Request.Context(), cmd))
}

// Get fetches one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	q := commands.GetCustomerQuery{ID: c.Param("id")}
	respond(c, http.StatusOK, h.get.Send(c.Request.Context(), q))
}

// List pages through customers, optionally by type
func (h *CustomerHandler) List(c *gin.Context) {
	q := commands.ListCustomersQuery{
		CustomerType: models.CustomerType(c.Query("type")),
		Page:         intQuery(c, "page", 1),
		PageSize:     intQuery(c, "page_size", repository.DefaultPageSize),
	}
	respond(c, http.StatusOK, h.list.Send(c.Request.Context(), q))
}
