package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth admits requests that carry key in the Api-Key header or as a
// bearer token.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		given := c.GetHeader("Api-Key")
		if given == "" {
			given = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if given == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key is required"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}
