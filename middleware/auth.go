package middleware

import (
	"net/http"
	"strings"

	"timebridge/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the actor's identity
// in the request context. Handlers read actorID to authorize transitions.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("actorID", subject)
		c.Set("actorRole", role)
		c.Next()
	}
}

// ActorID returns the authenticated actor's ID from the request context.
func ActorID(c *gin.Context) string {
	return c.GetString("actorID")
}
