package auth

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"real-estate-backend/internal/models"
	"real-estate-backend/internal/repository"
	"real-estate-backend/internal/result"
)

const (
	CodeUsernameTaken      = "UsernameTaken"
	CodeEmailTaken         = "EmailTaken"
	CodePhoneTaken         = "PhoneTaken"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeRegistrationFailed = "RegistrationFailed"
	CodeLoginFailed        = "LoginFailed"
)

var validate = validator.New()

func fieldErrors(err error) []*result.Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []*result.Error{result.ValidationError("InvalidCommand", "", err.Error())}
	}
	out := make([]*result.Error, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, result.ValidationError("Invalid"+fe.Field(), fe.Field(), "field failed rule "+fe.Tag()))
	}
	return out
}

// RegisterCommand creates an account in the identity store.
type RegisterCommand struct {
	Username    string `json:"username" validate:"required,min=3,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=7,max=32"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=200"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type RegisterValidator struct{}

func (v *RegisterValidator) Validate(ctx context.Context, cmd RegisterCommand) []*result.Error {
	if err := validate.Struct(cmd); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// RegisterResult is the payload handed back on success.
type RegisterResult struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type RegisterHandler struct {
	users  *repository.UserRepository
	tokens *TokenIssuer
}

func NewRegisterHandler(users *repository.UserRepository, tokens *TokenIssuer) *RegisterHandler {
	return &RegisterHandler{users: users, tokens: tokens}
}

func (h *RegisterHandler) Handle(ctx context.Context, cmd RegisterCommand) result.Result[RegisterResult] {
	// Uniqueness lives in the identity store, so check there. All three
	// checks run so the caller sees every clash at once.
	var errs []*result.Error

	taken, err := h.users.UsernameTaken(ctx, cmd.Username)
	if err != nil {
		return h.internal("checking username", err)
	}
	if taken {
		errs = append(errs, result.ConflictError(CodeUsernameTaken, "username is already in use"))
	}

	taken, err = h.users.EmailTaken(ctx, cmd.Email)
	if err != nil {
		return h.internal("checking email", err)
	}
	if taken {
		errs = append(errs, result.ConflictError(CodeEmailTaken, "email is already in use"))
	}

	taken, err = h.users.PhoneTaken(ctx, cmd.Phone)
	if err != nil {
		return h.internal("checking phone", err)
	}
	if taken {
		errs = append(errs, result.ConflictError(CodePhoneTaken, "phone number is already in use"))
	}

	if len(errs) > 0 {
		return result.Fail[RegisterResult](errs...)
	}

	hash, err := HashPassword(cmd.Password)
	if err != nil {
		return h.internal("hashing password", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     cmd.Username,
		Email:        cmd.Email,
		Phone:        cmd.Phone,
		DisplayName:  cmd.DisplayName,
		PasswordHash: hash,
	}
	if err := h.users.Add(ctx, user); err != nil {
		return h.internal("inserting user", err)
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return h.internal("issuing token", err)
	}
	return result.Ok(RegisterResult{UserID: user.ID, Token: token})
}

func (h *RegisterHandler) internal(op string, err error) result.Result[RegisterResult] {
	log.Printf("[auth] %s: %v", op, err)
	return result.Fail[RegisterResult](result.InternalError(CodeRegistrationFailed))
}

// LoginCommand authenticates against the identity store.
type LoginCommand struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginValidator struct{}

func (v *LoginValidator) Validate(ctx context.Context, cmd LoginCommand) []*result.Error {
	if err := validate.Struct(cmd); err != nil {
		return fieldErrors(err)
	}
	return nil
}

// LoginResult is the payload handed back on success.
type LoginResult struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

type LoginHandler struct {
	users  *repository.UserRepository
	tokens *TokenIssuer
}

func NewLoginHandler(users *repository.UserRepository, tokens *TokenIssuer) *LoginHandler {
	return &LoginHandler{users: users, tokens: tokens}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) result.Result[LoginResult] {
	user, err := h.users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		log.Printf("[auth] fetching user for login: %v", err)
		return result.Fail[LoginResult](result.InternalError(CodeLoginFailed))
	}
	// Same answer for unknown user and wrong password.
	if user == nil || !CheckPassword(user.PasswordHash, cmd.Password) {
		return result.Fail[LoginResult](result.UnauthorizedError(CodeInvalidCredentials, "invalid username or password"))
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("[auth] issuing token: %v", err)
		return result.Fail[LoginResult](result.InternalError(CodeLoginFailed))
	}
	return result.Ok(LoginResult{UserID: user.ID, DisplayName: user.DisplayName, Token: token})
}
