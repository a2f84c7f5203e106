// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/collecta-backend/internal/auth"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/service"
	"github.com/Annany2002/collecta-backend/internal/storage"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
// It answers with {"success": false, "error": <message>} for the last attached error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ginErr := c.Errors.Last()
		statusCode, userMessage := classify(ginErr)

		if statusCode >= http.StatusInternalServerError {
			customLog.Errorf("ErrorHandler: %s %s failed: %v", c.Request.Method, c.Request.URL.Path, ginErr.Err)
		} else {
			customLog.Warnf("ErrorHandler: %s %s -> %d: %v", c.Request.Method, c.Request.URL.Path, statusCode, ginErr.Err)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, gin.H{"success": false, "error": userMessage})
		} else {
			customLog.Warnf("ErrorHandler: Response already written before handling error.")
		}
	}
}

// classify maps an attached error to a status code and a message that is safe to return.
func classify(ginErr *gin.Error) (int, string) {
	err := ginErr.Err

	// Binding errors: validator failures or a body that does not decode.
	if ginErr.IsType(gin.ErrorTypeBind) {
		var ve *domain.ValidationError
		if errors.As(service.TranslateValidation(err), &ve) {
			return http.StatusBadRequest, ve.Error()
		}
		return http.StatusBadRequest, "Malformed request body."
	}

	switch domain.KindOf(err) {
	case domain.KindInvalidInput:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return http.StatusBadRequest, ve.Error()
		}
		return http.StatusBadRequest, "Invalid input."
	case domain.KindUnauthenticated:
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return http.StatusUnauthorized, "Invalid login or password."
		case errors.Is(err, auth.ErrTokenExpired):
			return http.StatusUnauthorized, "Authentication token has expired."
		case errors.Is(err, auth.ErrTokenMalformed),
			errors.Is(err, auth.ErrTokenInvalid),
			errors.Is(err, auth.ErrTokenClaimsInvalid),
			errors.Is(err, auth.ErrUnexpectedSigningMethod):
			return http.StatusUnauthorized, "Invalid or malformed authentication token."
		default:
			return http.StatusUnauthorized, "Authentication required."
		}
	case domain.KindForbidden:
		return http.StatusForbidden, "You do not have access to this resource."
	case domain.KindNotFound:
		switch {
		case errors.Is(err, storage.ErrCollectionNotFound):
			return http.StatusNotFound, "Collection not found."
		case errors.Is(err, storage.ErrItemNotFound):
			return http.StatusNotFound, "Item not found."
		case errors.Is(err, storage.ErrEventNotFound):
			return http.StatusNotFound, "Event not found."
		case errors.Is(err, storage.ErrUserNotFound):
			return http.StatusNotFound, "User not found."
		default:
			return http.StatusNotFound, "Resource not found."
		}
	case domain.KindConflict:
		switch {
		case errors.Is(err, storage.ErrEmailExists):
			return http.StatusConflict, "Email already exists."
		case errors.Is(err, storage.ErrUsernameExists):
			return http.StatusConflict, "Username already exists."
		default:
			return http.StatusConflict, "Resource already exists."
		}
	case domain.KindStorage:
		return http.StatusInternalServerError, "A storage error occurred."
	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}
