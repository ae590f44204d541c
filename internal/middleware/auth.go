package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskwise/taskwise-api/internal/constants"
	"github.com/taskwise/taskwise-api/internal/database"
	apierrors "github.com/taskwise/taskwise-api/internal/errors"
	"github.com/taskwise/taskwise-api/internal/models"
	"github.com/taskwise/taskwise-api/internal/utils"
)

// RequireAuth authenticates the request from its Authorization bearer token.
// The resolved user id and record are stored in the gin context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Access denied. No token provided.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			apierrors.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenString, secret)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// The token may outlive the account. Confirm the user still exists.
		var user models.User
		if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
			apierrors.Unauthorized(c, "Invalid token. User not found.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
