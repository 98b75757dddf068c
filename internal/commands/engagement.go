package commands

import (
	"context"

	"github.com/google/uuid"

	"real-estate-backend/internal/database"
	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

// Engagement commands attribute an action to the calling user. The caller id
// is an explicit field threaded in by the boundary layer, never ambient
// state; a missing caller is an authorization failure.

// RatePropertyCommand records or overwrites the caller's score for a
// property.
type RatePropertyCommand struct {
	CallerID   string `json:"-"`
	PropertyID string `json:"property_id" validate:"required"`
	Score      int    `json:"score" validate:"required,gte=1,lte=5"`
}

type RatePropertyValidator struct{}

func (v *RatePropertyValidator) Validate(ctx context.Context, cmd RatePropertyCommand) []*result.Error {
	return validateStruct(cmd)
}

type RatePropertyHandler struct {
	properties *repository.Repository[models.Property]
	ratings    *repository.Repository[models.Rating]
}

func NewRatePropertyHandler(db *database.GormDB) *RatePropertyHandler {
	return &RatePropertyHandler{
		properties: repository.New[models.Property](db),
		ratings:    repository.New[models.Rating](db),
	}
}

func (h *RatePropertyHandler) Handle(ctx context.Context, cmd RatePropertyCommand) result.Result[result.Empty] {
	if cmd.CallerID == "" {
		return result.Fail[result.Empty](result.UnauthorizedError(CodeCallerRequired, "caller identity is required"))
	}
	if errs := parseIDs(map[string]string{"property_id": cmd.PropertyID}); len(errs) > 0 {
		return result.Fail[result.Empty](errs...)
	}

	exists, err := h.properties.Exists(ctx, repository.And(
		repository.Where("id = ?", cmd.PropertyID), repository.NotDeleted()))
	if err != nil {
		return internalFor[result.Empty]("rating", "checking property", err)
	}
	if !exists {
		return result.Fail[result.Empty](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	existing, err := h.ratings.First(ctx,
		repository.Where("property_id = ? AND user_id = ?", cmd.PropertyID, cmd.CallerID))
	if err != nil {
		return internalFor[result.Empty]("rating", "fetching rating", err)
	}

	if existing != nil {
		existing.Score = cmd.Score
		if _, err := h.ratings.Update(ctx, existing); err != nil {
			return internalFor[result.Empty]("rating", "updating rating", err)
		}
		return result.OkEmpty()
	}

	rating := &models.Rating{
		ID:         uuid.NewString(),
		PropertyID: cmd.PropertyID,
		UserID:     cmd.CallerID,
		Score:      cmd.Score,
	}
	if err := h.ratings.Add(ctx, rating); err != nil {
		return internalFor[result.Empty]("rating", "inserting rating", err)
	}
	return result.OkEmpty()
}

// ToggleFavoriteCommand bookmarks a property for the caller, or removes the
// bookmark if it already exists. The returned value reports the new state.
type ToggleFavoriteCommand struct {
	CallerID   string `json:"-"`
	PropertyID string `json:"property_id" validate:"required"`
}

type ToggleFavoriteHandler struct {
	properties *repository.Repository[models.Property]
	favorites  *repository.Repository[models.Favorite]
}

func NewToggleFavoriteHandler(db *database.GormDB) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{
		properties: repository.New[models.Property](db),
		favorites:  repository.New[models.Favorite](db),
	}
}

func (h *ToggleFavoriteHandler) Handle(ctx context.Context, cmd ToggleFavoriteCommand) result.Result[bool] {
	if cmd.CallerID == "" {
		return result.Fail[bool](result.UnauthorizedError(CodeCallerRequired, "caller identity is required"))
	}
	if errs := parseIDs(map[string]string{"property_id": cmd.PropertyID}); len(errs) > 0 {
		return result.Fail[bool](errs...)
	}

	exists, err := h.properties.Exists(ctx, repository.And(
		repository.Where("id = ?", cmd.PropertyID), repository.NotDeleted()))
	if err != nil {
		return internalFor[bool]("favorite", "checking property", err)
	}
	if !exists {
		return result.Fail[bool](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	existing, err := h.favorites.First(ctx,
		repository.Where("property_id = ? AND user_id = ?", cmd.PropertyID, cmd.CallerID))
	if err != nil {
		return internalFor[bool]("favorite", "fetching favorite", err)
	}

	if existing != nil {
		// Favorites carry no history; removal is physical.
		if err := h.favorites.HardDelete(ctx, existing); err != nil {
			return internalFor[bool]("favorite", "removing favorite", err)
		}
		return result.Ok(false)
	}

	fav := &models.Favorite{
		ID:         uuid.NewString(),
		PropertyID: cmd.PropertyID,
		UserID:     cmd.CallerID,
	}
	if err := h.favorites.Add(ctx, fav); err != nil {
		return internalFor[bool]("favorite", "inserting favorite", err)
	}
	return result.Ok(true)
}

// AddCommentCommand attaches the caller's comment to a property.
type AddCommentCommand struct {
	CallerID   string `json:"-"`
	PropertyID string `json:"property_id" validate:"required"`
	Body       string `json:"body" validate:"required,min=1,max=2000"`
}

type AddCommentValidator struct{}

func (v *AddCommentValidator) Validate(ctx context.Context, cmd AddCommentCommand) []*result.Error {
	return validateStruct(cmd)
}

type AddCommentHandler struct {
	properties *repository.Repository[models.Property]
	comments   *repository.Repository[models.Comment]
}

func NewAddCommentHandler(db *database.GormDB) *AddCommentHandler {
	return &AddCommentHandler{
		properties: repository.New[models.Property](db),
		comments:   repository.New[models.Comment](db),
	}
}

func (h *AddCommentHandler) Handle(ctx context.Context, cmd AddCommentCommand) result.Result[string] {
	if cmd.CallerID == "" {
		return result.Fail[string](result.UnauthorizedError(CodeCallerRequired, "caller identity is required"))
	}
	if errs := parseIDs(map[string]string{"property_id": cmd.PropertyID}); len(errs) > 0 {
		return result.Fail[string](errs...)
	}

	exists, err := h.properties.Exists(ctx, repository.And(
		repository.Where("id = ?", cmd.PropertyID), repository.NotDeleted()))
	if err != nil {
		return internalFor[string]("comment", "checking property", err)
	}
	if !exists {
		return result.Fail[string](result.NotFoundError(CodePropertyNotFound, "property does not exist"))
	}

	comment := &models.Comment{
		ID:         uuid.NewString(),
		PropertyID: cmd.PropertyID,
		UserID:     cmd.CallerID,
		Body:       cmd.Body,
	}
	if err := h.comments.Add(ctx, comment); err != nil {
		return internalFor[string]("comment", "inserting comment", err)
	}
	return result.Ok(comment.ID)
}

// AddTestimonialCommand records site-level feedback from the caller.
type AddTestimonialCommand struct {
	CallerID string `json:"-"`
	Body     string `json:"body" validate:"required,min=1,max=2000"`
}

type AddTestimonialValidator struct{}

func (v *AddTestimonialValidator) Validate(ctx context.Context, cmd AddTestimonialCommand) []*result.Error {
	return validateStruct(cmd)
}

type AddTestimonialHandler struct {
	testimonials *repository.Repository[models.Testimonial]
}

func NewAddTestimonialHandler(db *database.GormDB) *AddTestimonialHandler {
	return &AddTestimonialHandler{testimonials: repository.New[models.Testimonial](db)}
}

func (h *AddTestimonialHandler) Handle(ctx context.Context, cmd AddTestimonialCommand) result.Result[string] {
	if cmd.CallerID == "" {
		return result.Fail[string](result.UnauthorizedError(CodeCallerRequired, "caller identity is required"))
	}

	testimonial := &models.Testimonial{
		ID:     uuid.NewString(),
		UserID: cmd.CallerID,
		Body:   cmd.Body,
	}
	if err := h.testimonials.Add(ctx, testimonial); err != nil {
		return internalFor[string]("testimonial", "inserting testimonial", err)
	}
	return result.Ok(testimonial.ID)
}
