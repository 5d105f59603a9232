package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RedirectMiddleware maps legacy paths onto current ones.
func RedirectMiddleware(basePath string) gin.HandlerFunc {
	redirects := map[string]string{
		"home":       LandingRoute,
		"my_parties": "my-parties",
		"panel/API":  "panel/api",
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for from, to := range redirects {
			from, to = basePath+from, basePath+to

			if path == from || strings.HasPrefix(path, from+"/") {
				c.Redirect(http.StatusMovedPermanently, to+path[len(from):])
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
