package dto

import (
	"time"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
)

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email,max=255"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Password string  `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the body of PATCH /users/me. Absent fields are
// left unchanged; an explicit null clears name or avatar_url.
type UpdateProfileRequest struct {
	Email     *string          `json:"email" binding:"omitempty,email,max=255"`
	Name      Optional[string] `json:"name"`
	AvatarURL Optional[string] `json:"avatar_url"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// ToAuthResponse wraps an issued token and its user
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		AccessToken: token,
		TokenType:   constants.TokenType,
		User:        ToUserDTO(user),
	}
}
