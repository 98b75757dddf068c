package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/pipeline"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
	"real-estate-backend/internal/search"
)

// PropertyHandler handles catalogue listing endpoints.
type PropertyHandler struct {
	create       *pipeline.Pipeline[commands.CreatePropertyCommand, string]
	update       *pipeline.Pipeline[commands.UpdatePropertyCommand, result.Empty]
	changeStatus *pipeline.Pipeline[commands.ChangePropertyStatusCommand, result.Empty]
	del          *pipeline.Pipeline[commands.DeletePropertyCommand, result.Empty]
	get          *pipeline.Pipeline[commands.GetPropertyQuery, *models.Property]
	list         *pipeline.Pipeline[commands.ListPropertiesQuery, *repository.PagedResult[models.Property]]
	search       *search.SearchClient
}

func NewPropertyHandler(db *database.GormDB, indexer commands.PropertyIndexer, searchClient *search.SearchClient) *PropertyHandler {
	return &PropertyHandler{
		create:       pipeline.New(commands.NewCreatePropertyValidator(db), commands.NewCreatePropertyHandler(db, indexer)),
		update:       pipeline.New(&commands.UpdatePropertyValidator{}, commands.NewUpdatePropertyHandler(db, indexer)),
		changeStatus: pipeline.New(&commands.ChangePropertyStatusValidator{}, commands.NewChangePropertyStatusHandler(db, indexer)),
		del:          pipeline.New[commands.DeletePropertyCommand, result.Empty](nil, commands.NewDeletePropertyHandler(db, indexer)),
		get:          pipeline.New[commands.GetPropertyQuery, *models.Property](nil, commands.NewGetPropertyHandler(db)),
		list:         pipeline.New[commands.ListPropertiesQuery, *repository.PagedResult[models.Property]](nil, commands.NewListPropertiesHandler(db)),
		search:       searchClient,
	}
}

// Create lists a new property
func (h *PropertyHandler) Create(c *gin.Context) {
	var cmd commands.CreatePropertyCommand
	if !bindJSON(c, &cmd) {
		return
	}
	respond(c, http.StatusCreated, h.create.Send(c.Request.Context(), cmd))
}

// Update edits listing details
func (h *PropertyHandler) Update(c *gin.Context) {
	var cmd commands.UpdatePropertyCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = c.Param("id")
	respond(c, http.StatusOK, h.update.Send(c.Request.Context(), cmd))
}

// ChangeStatus applies a status event (release, relist, maintain, restore)
func (h *PropertyHandler) ChangeStatus(c *gin.Context) {
	var cmd commands.ChangePropertyStatusCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.ID = c.Param("id")
	respond(c, http.StatusOK, h.changeStatus.Send(c.Request.Context(), cmd))
}

// Delete soft-deletes a listing
func (h *PropertyHandler) Delete(c *gin.Context) {
	cmd := commands.DeletePropertyCommand{ID: c.Param("id")}
	respond(c, http.StatusOK, h.del.Send(c.Request.Context(), cmd))
}

// Get fetches one listing
func (h *PropertyHandler) Get(c *gin.Context) {
	q := commands.GetPropertyQuery{ID: c.Param("id")}
	respond(c, http.StatusOK, h.get.Send(c.Request.Context(), q))
}

// List pages through the catalogue with optional filters
func (h *PropertyHandler) List(c *gin.Context) {
	q := commands.ListPropertiesQuery{
		Status:     models.PropertyStatus(c.Query("status")),
		CategoryID: c.Query("category_id"),
		OrderBy:    c.Query("order_by"),
		Page:       intQuery(c, "page", 1),
		PageSize:   intQuery(c, "page_size", repository.DefaultPageSize),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &f
		}
	}
	respond(c, http.StatusOK, h.list.Send(c.Request.Context(), q))
}

// Search runs a free-text query against the search index
func (h *PropertyHandler) Search(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not enabled"})
		return
	}

	query := c.Query("q")
	status := c.Query("status")
	limit := int64(intQuery(c, "limit", 20))

	hits, err := h.search.Search(query, status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hits, "count": len(hits)})
}

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}
