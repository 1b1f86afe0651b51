package middleware

import (
	"net/http"
	"strings"

	"advoqat/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Supabase-issued bearer token and stores the
// authenticated user ID on the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractUserIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token carries no subject"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// AuthedUserID returns the user ID set by AuthMiddleware.
func AuthedUserID(c *gin.Context) string {
	return c.GetString("userID")
}
