package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/dto"
	apierrors "github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/errors"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/middleware"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/services"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	accounts *services.AccountService
	logger   *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(accounts *services.AccountService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAccountError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateMe applies a partial update to the authenticated user's profile.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), userID, services.UpdateProfileInput{
		Email:          req.Email,
		Name:           req.Name.Ptr(),
		ClearName:      req.Name.Cleared(),
		AvatarURL:      req.AvatarURL.Ptr(),
		ClearAvatarURL: req.AvatarURL.Cleared(),
	})
	if err != nil {
		respondAccountError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}
