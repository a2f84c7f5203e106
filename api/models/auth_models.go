// api/models/auth_models.go
package models

import "github.com/Annany2002/collecta-backend/internal/domain"

// --- Auth Request/Response Structs ---

// RegisterRequest defines the structure for the register request body
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DateOfBirth string `json:"date_of_birth"`
}

// LoginRequest defines the structure for the login request body.
// Login is either the email address or the username.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse defines the structure for the login response body
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}
