// api/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/collecta-backend/api/middleware"
	"github.com/Annany2002/collecta-backend/api/models"
	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/service"
)

// AuthHandler holds dependencies for authentication and profile handlers.
type AuthHandler struct {
	Svc *service.Service
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(svc *service.Service, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Svc: svc,
		Cfg: cfg,
	}
}

// Register handles user registration requests.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindBody(c, &req) {
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), service.RegisterInput{
		Name:        req.Name,
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, models.KeyUser: user})
}

// Login handles user login requests and issues JWT on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindBody(c, &req) {
		return
	}

	token, user, err := h.Svc.Login(c.Request.Context(), service.LoginInput{Login: req.Login, Password: req.Password})
	if err != nil {
		_ = c.Error(err)
		return
	}

	customLog.Printf("Handler: UserID %d logged in", user.ID)
	c.JSON(http.StatusOK, models.LoginResponse{Success: true, Token: token, User: user})
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Svc.Me(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyUser: user})
}

// UpdateMe applies profile edits.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var in service.ProfileInput
	if !bindBody(c, &in) {
		return
	}
	user, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyUser: user})
}

// UpdatePicture replaces the profile picture from a multipart "image" file.
func (h *AuthHandler) UpdatePicture(c *gin.Context) {
	img, err := formImage(c, h.Cfg.MaxUploadBytes)
	if err != nil {
		_ = c.Error(err)
		return
	}
	user, err := h.Svc.SetProfilePicture(c.Request.Context(), middleware.CallerFrom(c), img)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, models.KeyUser: user})
}
