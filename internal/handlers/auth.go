package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real-estate-backend/internal/auth"
	"real-estate-backend/internal/pipeline"
	"real-estate-backend/internal/repository"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	register *pipeline.Pipeline[auth.RegisterCommand, auth.RegisterResult]
	login    *pipeline.Pipeline[auth.LoginCommand, auth.LoginResult]
	users    *repository.UserRepository
}

func NewAuthHandler(users *repository.UserRepository, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		register: pipeline.New(&auth.RegisterValidator{}, auth.NewRegisterHandler(users, tokens)),
		login:    pipeline.New(&auth.LoginValidator{}, auth.NewLoginHandler(users, tokens)),
		users:    users,
	}
}

// Register creates an account
func (h *AuthHandler) Register(c *gin.Context) {
	var cmd auth.RegisterCommand
	if !bindJSON(c, &cmd) {
		return
	}
	respond(c, http.StatusCreated, h.register.Send(c.Request.Context(), cmd))
}

// Login authenticates and hands out a token
func (h *AuthHandler) Login(c *gin.Context) {
	var cmd auth.LoginCommand
	if !bindJSON(c, &cmd) {
		return
	}
	respond(c, http.StatusOK, h.login.Send(c.Request.Context(), cmd))
}

// Me returns the authenticated caller's profile
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), auth.CallerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"phone":        user.Phone,
		"display_name": user.DisplayName,
		"created_at":   user.CreatedAt,
	}})
}
