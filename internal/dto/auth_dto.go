package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/booking-admin/internal/models"
	"github.com/google/uuid"
)

type GoogleSignInRequest struct {
	IDToken string `json:"id_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest completes the profile of a freshly signed-in user.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
}

type ProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100"`
	Image     string `json:"image" validate:"omitempty,url,max=500"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	Name      string            `json:"name"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Image     string            `json:"image,omitempty"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	LastLogin *time.Time        `json:"last_login,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.DisplayName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Image:     u.Image,
		Role:      u.Role,
		Status:    u.Status,
		LastLogin: u.LastLogin,
	}
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Redis     string `json:"redis"`
}
