package middleware

import (
	"net/http"
	"strings"

	"taskledger/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT validates the bearer token, stores user_id in the gin context and
// stamps the owner identity onto the request context so the service layer
// can resolve it without touching gin.
func JWT(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(service.WithOwner(c.Request.Context(), userID))
		c.Next()
	}
}
