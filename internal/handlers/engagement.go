package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/auth"
	"real-estate-backend/internal/commands"
	"real-estate-backend/internal/database"
	"real-estate-backend/internal/pipeline"
	"real-estate-backend/internal/result"
)

// EngagementHandler handles ratings, favorites, comments and testimonials.
// Every endpoint runs behind RequireAuth; the caller id comes off the token.
type EngagementHandler struct {
	rate        *pipeline.Pipeline[commands.RatePropertyCommand, result.Empty]
	favorite    *pipeline.Pipeline[commands.ToggleFavoriteCommand, bool]
	comment     *pipeline.Pipeline[commands.AddCommentCommand, string]
	testimonial *pipeline.Pipeline[commands.AddTestimonialCommand, string]
}

func NewEngagementHandler(db *database.GormDB) *EngagementHandler {
	return &EngagementHandler{
		rate:        pipeline.New(&commands.RatePropertyValidator{}, commands.NewRatePropertyHandler(db)),
		favorite:    pipeline.New[commands.ToggleFavoriteCommand, bool](nil, commands.NewToggleFavoriteHandler(db)),
		comment:     pipeline.New(&commands.AddCommentValidator{}, commands.NewAddCommentHandler(db)),
		testimonial: pipeline.New(&commands.AddTestimonialValidator{}, commands.NewAddTestimonialHandler(db)),
	}
}

// Rate records or overwrites the caller's score for a property
func (h *EngagementHandler) Rate(c *gin.Context) {
	var cmd commands.RatePropertyCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.CallerID = auth.CallerID(c)
	cmd.PropertyID = c.Param("id")
	respond(c, http.StatusOK, h.rate.Send(c.Request.Context(), cmd))
}

// ToggleFavorite bookmarks or un-bookmarks a property for the caller
func (h *EngagementHandler) ToggleFavorite(c *gin.Context) {
	cmd := commands.ToggleFavoriteCommand{
		CallerID:   auth.CallerID(c),
		PropertyID: c.Param("id"),
	}
	res := h.favorite.Send(c.Request.Context(), cmd)
	if res.IsFailed() {
		c.JSON(res.FirstStatus(), gin.H{"errors": res.Errors})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"favorited": res.Value}})
}

// Comment attaches the caller's comment to a property
func (h *EngagementHandler) Comment(c *gin.Context) {
	var cmd commands.AddCommentCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.CallerID = auth.CallerID(c)
	cmd.PropertyID = c.Param("id")
	respond(c, http.StatusCreated, h.comment.Send(c.Request.Context(), cmd))
}

// Testimonial records site-level feedback from the caller
func (h *EngagementHandler) Testimonial(c *gin.Context) {
	var cmd commands.AddTestimonialCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.CallerID = auth.CallerID(c)
	respond(c, http.StatusCreated, h.testimonial.Send(c.Request.Context(), cmd))
}
