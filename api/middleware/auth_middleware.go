// api/middleware/auth_middleware.go
package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/collecta-backend/config"
	"github.com/Annany2002/collecta-backend/internal/auth"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// CallerKey is the gin context key holding the authenticated *domain.Caller.
const CallerKey = "caller"

// AuthMiddleware creates a gin middleware for checking JWT authentication.
// On success the request carries a *domain.Caller under CallerKey; failures are attached
// for ErrorHandler and the chain is aborted.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(fmt.Errorf("authorization header required: %w", domain.ErrUnauthenticated))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			_ = c.Error(fmt.Errorf("authorization header format must be Bearer {token}: %w", auth.ErrTokenMalformed))
			c.Abort()
			return
		}

		userID, err := auth.ValidateJWT(strings.TrimSpace(parts[1]), cfg.JWTSecret)
		if err != nil {
			customLog.Printf("AuthMiddleware: Token validation failed: %v", err)
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(CallerKey, domain.NewCaller(userID))
		c.Next()
	}
}

// CallerFrom returns the caller set by AuthMiddleware, or nil for anonymous requests.
func CallerFrom(c *gin.Context) *domain.Caller {
	v, ok := c.Get(CallerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*domain.Caller)
	return caller
}
