package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DomainValidatorMiddleware refuses requests for any host but domain.
func DomainValidatorMiddleware(domain string) gin.HandlerFunc {
	return func(c *gin.Context) {
		host, _, err := net.SplitHostPort(c.Request.Host)
		if err != nil {
			host = c.Request.Host
		}
		if host != domain {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
