package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// IdentityMiddleware propagates the authenticated user identity set by the
// upstream login layer (X-User-ID). Requests without an identity are
// rejected; the engine records the requesting user on every mutation.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing user identity"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the requesting user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
