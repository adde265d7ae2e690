package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/dto"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/observability"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	accounts *services.AccountService
	logger   *slog.Logger
	prom     *observability.Prom
}

// NewAuthHandler creates a new AuthHandler. prom may be nil.
func NewAuthHandler(accounts *services.AccountService, logger *slog.Logger, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger,
		prom:     prom,
	}
}

// Signup registers a new user and returns an access token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, token, err := h.accounts.Signup(c.Request.Context(), services.SignupInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.prom.AccountEvent("signup", outcome(err))
		respondAccountError(c, h.logger, err)
		return
	}

	h.prom.AccountEvent("signup", "ok")
	c.JSON(http.StatusCreated, dto.ToAuthResponse(*user, token))
}

// Login authenticates a user and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, token, err := h.accounts.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.prom.AccountEvent("login", outcome(err))
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.prom.AuthFailure(observability.ReasonInvalidCredentials)
		}
		respondAccountError(c, h.logger, err)
		return
	}

	h.prom.AccountEvent("login", "ok")
	c.JSON(http.StatusOK, dto.ToAuthResponse(*user, token))
}

func outcome(err error) string {
	switch {
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, auth.ErrPasswordTooLong):
		return "rejected"
	default:
		return "error"
	}
}

func respondAccountError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		// The token outlived its account.
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrNameTooLong),
		errors.Is(err, services.ErrAvatarURLTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, auth.ErrPasswordTooLong):
		apierrors.BadRequest(c, "Password must be at most 72 bytes")
	default:
		logger.ErrorContext(c.Request.Context(), "account request failed", slog.String("error", err.Error()))
		apierrors.InternalError(c, "")
	}
}
